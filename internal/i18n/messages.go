package i18n

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/message/catalog"
)

type entry struct {
	key string
	en  catalog.Message
	pt  catalog.Message
}

func str(s string) catalog.Message { return catalog.String(s) }

func count(one, other string) catalog.Message {
	return plural.Selectf(1, "%d", "=1", one, "other", other)
}

var entries = []entry{
	// Column management
	{"modal~Manage columns", str("Manage columns"), str("Gerir colunas")},
	{"modal~Selected columns will appear in the table.",
		str("Selected columns will appear in the table."),
		str("As colunas selecionadas aparecem na tabela.")},
	{"modal~You can select up to {{MAX_VIEW_COLS}} columns",
		str("You can select up to %d columns"),
		str("Pode selecionar até %d colunas")},
	{"modal~The namespace column is only shown when in \"All namespaces\"",
		str("The namespace column is only shown when in \"All namespaces\""),
		str("A coluna namespace só aparece em \"Todos os namespaces\"")},
	{"modal~Default {{resourceKind}} columns",
		str("Default %s columns"),
		str("Colunas predefinidas de %s")},
	{"modal~Additional columns", str("Additional columns"), str("Colunas adicionais")},
	{"modal~Restore default columns", str("Restore default columns"), str("Repor colunas predefinidas")},
	{"modal~Toggle", str("Toggle"), str("Alternar")},

	// Refresh interval
	{"monitoring~Refresh interval", str("Refresh interval"), str("Intervalo de atualização")},
	{"monitoring~Refresh off", str("Refresh off"), str("Atualização desligada")},
	{"monitoring~{{count}} second", count("%d second", "%d seconds"), count("%d segundo", "%d segundos")},
	{"monitoring~{{count}} minute", count("%d minute", "%d minutes"), count("%d minuto", "%d minutos")},
	{"monitoring~{{count}} hour", count("%d hour", "%d hours"), count("%d hora", "%d horas")},
	{"monitoring~{{count}} day", count("%d day", "%d days"), count("%d dia", "%d dias")},

	// Shared
	{"public~Save", str("Save"), str("Guardar")},
	{"public~Cancel", str("Cancel"), str("Cancelar")},
	{"public~Select screen", str("Select screen"), str("Selecionar ecrã")},
	{"public~All namespaces", str("All namespaces"), str("Todos os namespaces")},
	{"public~Select namespace", str("Select namespace"), str("Selecionar namespace")},
	{"public~Saved {{resourceKind}} columns", str("Saved %s columns"), str("Colunas de %s guardadas")},
	{"public~Copied {{name}} to clipboard", str("Copied %s to clipboard"), str("%s copiado para a área de transferência")},
	{"monitoring~Refresh interval set to {{interval}}",
		str("Refresh interval set to %s"),
		str("Intervalo de atualização: %s")},
}
