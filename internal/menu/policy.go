package menu

import "github.com/dshills/healthmetrics/internal/routes"

// Policy menu presentation. The classes hide the menu above the smMd
// breakpoint and stretch it to full width below it.
const (
	PolicyClassName = "smMd:hidden max-w-screen min-w-full w-screen mx-auto my-0 px-0 flex justify-center"
	PolicyLabel     = "Policy Context Pages"
)

// PolicyCardMenuMobile is the mobile menu of the policy context pages.
func PolicyCardMenuMobile() Tree {
	return CardMenuMobile(Props{
		ClassName:    PolicyClassName,
		RouteConfigs: routes.Policy(),
		Label:        PolicyLabel,
	})
}
