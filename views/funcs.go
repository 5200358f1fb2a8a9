package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/carehub"
)

// Funcs returns the components of this package as carehub.ViewFuncs. site is
// the site name shown on pages rendered outside the catalog.
func Funcs(site string) carehub.ViewFuncs {
	return carehub.ViewFuncs{
		Home:           Home,
		BlogIndex:      BlogIndex,
		BlogPost:       BlogPost,
		ConditionIndex: ConditionIndex,
		ConditionList:  ConditionList,
		Condition:      Condition,
		CareIndex:      CareIndex,
		Care:           Care,
		LabsIndex:      LabsIndex,
		Labs:           Labs,
		BridgeCTA:      BridgeCTA,
		AdminLogin: func(showError bool, csrfToken string) templ.Component {
			return AdminLogin(site, showError, csrfToken)
		},
		AdminAnalytics: AdminAnalytics,
		NotFound:       func() templ.Component { return NotFound(site) },
		ServerError:    func() templ.Component { return ServerError(site) },
	}
}
