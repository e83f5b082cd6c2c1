package metric

// Record is the serialized shape of a metric configuration, shared by
// catalog files and exports.
type Record struct {
	MetricID                   ID      `json:"metricId" yaml:"metricId" toml:"metricId"`
	ChartTitle                 string  `json:"chartTitle" yaml:"chartTitle" toml:"chartTitle"`
	TrendsCardTitleName        string  `json:"trendsCardTitleName,omitempty" yaml:"trendsCardTitleName,omitempty" toml:"trendsCardTitleName,omitempty"`
	ColumnTitleHeader          string  `json:"columnTitleHeader,omitempty" yaml:"columnTitleHeader,omitempty" toml:"columnTitleHeader,omitempty"`
	ShortLabel                 string  `json:"shortLabel" yaml:"shortLabel" toml:"shortLabel"`
	Type                       Type    `json:"type" yaml:"type" toml:"type"`
	RateNumeratorMetric        *Record `json:"rateNumeratorMetric,omitempty" yaml:"rateNumeratorMetric,omitempty" toml:"rateNumeratorMetric,omitempty"`
	RateDenominatorMetric      *Record `json:"rateDenominatorMetric,omitempty" yaml:"rateDenominatorMetric,omitempty" toml:"rateDenominatorMetric,omitempty"`
	PopulationComparisonMetric *Record `json:"populationComparisonMetric,omitempty" yaml:"populationComparisonMetric,omitempty" toml:"populationComparisonMetric,omitempty"`
}

// TextRecord is the serialized form of Text.
type TextRecord struct {
	Text string `json:"text" yaml:"text" toml:"text"`
}

// DataTypeRecord is the serialized shape of a DataTypeConfig. The map policy
// is carried by name.
type DataTypeRecord struct {
	CategoryID            CategoryID      `json:"categoryId" yaml:"categoryId" toml:"categoryId"`
	DataTypeID            DataTypeID      `json:"dataTypeId" yaml:"dataTypeId" toml:"dataTypeId"`
	MapConfig             string          `json:"mapConfig" yaml:"mapConfig" toml:"mapConfig"`
	DataTypeShortLabel    string          `json:"dataTypeShortLabel" yaml:"dataTypeShortLabel" toml:"dataTypeShortLabel"`
	FullDisplayName       string          `json:"fullDisplayName" yaml:"fullDisplayName" toml:"fullDisplayName"`
	FullDisplayNameInline string          `json:"fullDisplayNameInline" yaml:"fullDisplayNameInline" toml:"fullDisplayNameInline"`
	Definition            TextRecord      `json:"definition" yaml:"definition" toml:"definition"`
	Description           TextRecord      `json:"description" yaml:"description" toml:"description"`
	DataTableTitle        string          `json:"dataTableTitle" yaml:"dataTableTitle" toml:"dataTableTitle"`
	Metrics               map[Kind]Record `json:"metrics" yaml:"metrics" toml:"metrics"`
}

// CategoryRecord is the serialized shape of a Category.
type CategoryRecord struct {
	CategoryID  CategoryID       `json:"categoryId" yaml:"categoryId" toml:"categoryId"`
	DropdownIDs []DataTypeID     `json:"dropdownIds" yaml:"dropdownIds" toml:"dropdownIds"`
	MetricIDs   []ID             `json:"metricIds" yaml:"metricIds" toml:"metricIds"`
	DataTypes   []DataTypeRecord `json:"dataTypes" yaml:"dataTypes" toml:"dataTypes"`
}

// ToRecord converts a metric configuration to its serialized shape.
func ToRecord(m Config) Record {
	l := m.DisplayLabels()
	r := Record{
		MetricID:            m.ID(),
		ChartTitle:          l.ChartTitle,
		TrendsCardTitleName: l.TrendsCardTitleName,
		ColumnTitleHeader:   l.ColumnTitleHeader,
		ShortLabel:          l.ShortLabel,
		Type:                m.Type(),
	}
	for _, ref := range m.Refs() {
		nested := ToRecord(ref.Metric)
		switch ref.Field {
		case FieldNumerator:
			r.RateNumeratorMetric = &nested
		case FieldDenominator:
			r.RateDenominatorMetric = &nested
		case FieldComparison:
			r.PopulationComparisonMetric = &nested
		}
	}
	return r
}

// Record converts d to its serialized shape.
func (d *DataTypeConfig) Record() DataTypeRecord {
	metrics := make(map[Kind]Record, len(d.Metrics))
	for k, m := range d.Metrics {
		metrics[k] = ToRecord(m)
	}
	return DataTypeRecord{
		CategoryID:            d.CategoryID,
		DataTypeID:            d.DataTypeID,
		MapConfig:             d.MapConfig.Name,
		DataTypeShortLabel:    d.DataTypeShortLabel,
		FullDisplayName:       d.FullDisplayName,
		FullDisplayNameInline: d.FullDisplayNameInline,
		Definition:            TextRecord{Text: d.Definition.Text},
		Description:           TextRecord{Text: d.Description.Text},
		DataTableTitle:        d.DataTableTitle,
		Metrics:               metrics,
	}
}

// Record converts c to its serialized shape.
func (c *Category) Record() CategoryRecord {
	dts := make([]DataTypeRecord, 0, len(c.DataTypes))
	for i := range c.DataTypes {
		dts = append(dts, c.DataTypes[i].Record())
	}
	return CategoryRecord{
		CategoryID:  c.ID,
		DropdownIDs: append([]DataTypeID(nil), c.DropdownIDs...),
		MetricIDs:   append([]ID(nil), c.MetricIDs...),
		DataTypes:   dts,
	}
}
