package types

import (
	"github.com/renato0307/kview/internal/i18n"
	"github.com/renato0307/kview/internal/k8s"
	"github.com/renato0307/kview/internal/settings"
	"github.com/renato0307/kview/internal/ui"
)

// AppContext holds app-wide configuration and dependencies
type AppContext struct {
	Theme      *ui.Theme
	Translator i18n.Translator
	Repo       k8s.Repository
	Columns    *settings.Setting[settings.TableColumns]
	Interval   *settings.Setting[string]
	Namespace  string
}

// NewAppContext creates a new application context
func NewAppContext(
	theme *ui.Theme,
	translator i18n.Translator,
	repo k8s.Repository,
	columns *settings.Setting[settings.TableColumns],
	interval *settings.Setting[string],
) *AppContext {
	return &AppContext{
		Theme:      theme,
		Translator: translator,
		Repo:       repo,
		Columns:    columns,
		Interval:   interval,
	}
}
