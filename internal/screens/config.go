package screens

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/renato0307/kview/internal/columns"
	"github.com/renato0307/kview/internal/i18n"
	"github.com/renato0307/kview/internal/k8s"
	"github.com/renato0307/kview/internal/logging"
	"github.com/renato0307/kview/internal/types"
	"github.com/renato0307/kview/internal/ui"
)

// tickMsg triggers periodic refresh. Ticks of an older generation are
// dropped so changing the interval never leaves two tick loops running.
type tickMsg struct {
	screenID   string
	generation int
}

// itemsLoadedMsg carries the result of one list call back to Update.
type itemsLoadedMsg struct {
	screenID  string
	namespace string
	items     []any
	duration  time.Duration
	err       error
}

// ColumnConfig defines a column in the resource list table
type ColumnConfig struct {
	ID         string           // column management id, "" for unmanaged
	Field      string           // Field name in resource struct
	Title      string           // Column display title
	Width      int              // 0 = dynamic, >0 = fixed
	Format     func(any) string // Optional custom formatter
	Priority   int              // 1=critical, 2=important, 3=optional
	Additional bool             // hidden until the user selects it
}

// ScreenConfig defines configuration for a generic resource screen
type ScreenConfig struct {
	ID           string
	Title        string
	Kind         string // resource kind shown in column management
	LayoutID     string // user settings key of the column choice
	ResourceType k8s.ResourceType
	Columns      []ColumnConfig
	SearchFields []string

	TrackSelection bool

	// Items replaces the repository list with static rows.
	Items func() []any
}

// Managed reports whether the user can choose the columns of this screen.
func (c ScreenConfig) Managed() bool {
	return c.LayoutID != ""
}

// Layout returns the column management layout of this screen.
func (c ScreenConfig) Layout(selected sets.Set[string]) columns.Layout {
	managed := make([]columns.ManagedColumn, 0, len(c.Columns))
	for _, col := range c.Columns {
		managed = append(managed, columns.ManagedColumn{
			ID:         col.ID,
			Title:      col.Title,
			Additional: col.Additional,
		})
	}
	return columns.Layout{
		ID:              c.LayoutID,
		Columns:         managed,
		SelectedColumns: selected,
		Type:            c.Kind,
	}
}

// ConfigScreen is a generic screen implementation driven by ScreenConfig
type ConfigScreen struct {
	config   ScreenConfig
	repo     k8s.Repository
	theme    *ui.Theme
	tr       i18n.Translator
	table    table.Model
	items    []any
	filtered []any
	filter   string
	width    int
	height   int

	selectedKey string

	namespace string
	committed sets.Set[string]
	columnIDs []string // ids picked by column management, in layout order

	visibleColumns []ColumnConfig // Columns currently visible
	hiddenCount    int            // selected columns that do not fit

	interval   *time.Duration
	generation int
	loaded     bool
}

// NewConfigScreen creates a new config-driven screen
func NewConfigScreen(cfg ScreenConfig, ctx *types.AppContext) *ConfigScreen {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(ctx.Theme.ToTableStyles())

	s := &ConfigScreen{
		config:    cfg,
		repo:      ctx.Repo,
		theme:     ctx.Theme,
		tr:        ctx.Translator,
		table:     t,
		namespace: ctx.Namespace,
		committed: sets.New[string](),
		width:     80,
		height:    10,
	}
	s.rebuildColumns()
	return s
}

// Implement Screen interface

func (s *ConfigScreen) ID() string {
	return s.config.ID
}

func (s *ConfigScreen) Title() string {
	return s.config.Title
}

func (s *ConfigScreen) HelpText() string {
	return "↑/↓: navigate • /: filter • c: columns • i: interval • n: namespace • :: screens • y: copy name • q: quit"
}

func (s *ConfigScreen) Operations() []types.Operation {
	return []types.Operation{
		{
			ID:          "copy-name",
			Name:        "Copy name",
			Description: "Copy the selected resource name to the clipboard",
			Shortcut:    "y",
			Execute:     s.copySelectedName,
		},
		{
			ID:          "refresh",
			Name:        "Refresh",
			Description: "Reload the resource list",
			Shortcut:    "ctrl+r",
			Execute:     s.Refresh,
		},
	}
}

// Config returns the screen configuration.
func (s *ConfigScreen) Config() ScreenConfig {
	return s.config
}

func (s *ConfigScreen) Init() tea.Cmd {
	return tea.Batch(s.Refresh(), s.scheduleTick())
}

func (s *ConfigScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case itemsLoadedMsg:
		if msg.screenID != s.config.ID || msg.namespace != s.listNamespace() {
			return s, nil
		}
		if msg.err != nil {
			return s, func() tea.Msg {
				return types.ErrorStatusMsg(fmt.Sprintf("Failed to fetch %s: %v", s.config.Title, msg.err))
			}
		}
		s.items = msg.items
		s.loaded = true
		s.applyFilter()
		if s.config.TrackSelection {
			s.restoreCursorPosition()
		}
		count := len(s.filtered)
		return s, func() tea.Msg {
			return types.RefreshCompleteMsg{ScreenID: msg.screenID, Duration: msg.duration, Count: count}
		}

	case tickMsg:
		if msg.screenID != s.config.ID || msg.generation != s.generation {
			logging.Debug("Ignoring stale tick", "screen", msg.screenID, "generation", msg.generation)
			return s, nil
		}
		return s, tea.Batch(s.Refresh(), s.scheduleTick())

	case types.FilterUpdateMsg:
		s.SetFilter(msg.Filter)
		return s, nil

	case types.ClearFilterMsg:
		s.SetFilter("")
		return s, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		s.table, cmd = s.table.Update(msg)
		if s.config.TrackSelection {
			s.updateSelectedKey()
		}
		return s, cmd

	case tea.WindowSizeMsg:
		s.SetSize(msg.Width, msg.Height)
		return s, nil
	}

	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return s, cmd
}

func (s *ConfigScreen) View() string {
	if s.loaded && len(s.table.Rows()) == 0 {
		return s.renderEmptyView()
	}
	return s.table.View()
}

// renderEmptyView shows a helpful message when there is nothing to list
func (s *ConfigScreen) renderEmptyView() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(s.theme.Muted).
		Bold(true)
	hintStyle := lipgloss.NewStyle().
		Foreground(s.theme.Muted)

	hint := "Press n to pick another namespace"
	if s.filter != "" {
		hint = "Press / then esc to clear the filter"
	}

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		titleStyle.Render("No resources found"),
		"",
		hintStyle.Render(hint),
	)
	return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, content)
}

// Refresh fetches resources in a command and delivers them to Update
func (s *ConfigScreen) Refresh() tea.Cmd {
	repo := s.repo
	id := s.config.ID
	resourceType := s.config.ResourceType
	namespace := s.listNamespace()

	if s.config.Items != nil {
		items := s.config.Items()
		return func() tea.Msg {
			return itemsLoadedMsg{screenID: id, namespace: namespace, items: items}
		}
	}

	return func() tea.Msg {
		timing := logging.Start("refresh " + id)
		items, err := repo.List(context.Background(), resourceType, namespace)
		return itemsLoadedMsg{
			screenID:  id,
			namespace: namespace,
			items:     items,
			duration:  timing.Elapsed(),
			err:       err,
		}
	}
}

// listNamespace is the namespace passed to the repository.
func (s *ConfigScreen) listNamespace() string {
	if !s.config.ResourceType.Namespaced() {
		return ""
	}
	return s.namespace
}

// SetInterval replaces the refresh interval and restarts the tick loop. A nil
// interval stops periodic refresh.
func (s *ConfigScreen) SetInterval(interval *time.Duration) tea.Cmd {
	s.interval = interval
	s.generation++
	return s.scheduleTick()
}

// Interval returns the current refresh interval, nil when refresh is off.
func (s *ConfigScreen) Interval() *time.Duration {
	return s.interval
}

func (s *ConfigScreen) scheduleTick() tea.Cmd {
	if s.interval == nil {
		return nil
	}
	id, gen := s.config.ID, s.generation
	return tea.Tick(*s.interval, func(time.Time) tea.Msg {
		return tickMsg{screenID: id, generation: gen}
	})
}

// SetNamespace changes the listed namespace. An empty namespace lists all
// namespaces and brings back the namespace column.
func (s *ConfigScreen) SetNamespace(namespace string) tea.Cmd {
	if namespace == s.namespace {
		return nil
	}
	s.namespace = namespace
	s.rebuildColumns()
	if !s.config.ResourceType.Namespaced() {
		return nil
	}
	return s.Refresh()
}

// Namespace returns the selected namespace, "" for all namespaces.
func (s *ConfigScreen) Namespace() string {
	return s.namespace
}

// Layout returns the column management layout seeded with the committed
// choice of this screen.
func (s *ConfigScreen) Layout() columns.Layout {
	return s.config.Layout(s.committed)
}

// SetCommittedColumns applies the committed column choice of this screen.
func (s *ConfigScreen) SetCommittedColumns(ids []string) {
	s.committed = sets.New(ids...)
	s.rebuildColumns()
}

// ColumnIDs returns the ids of the columns picked for display, in order.
func (s *ConfigScreen) ColumnIDs() []string {
	return slices.Clone(s.columnIDs)
}

// rebuildColumns derives the displayed columns from the committed choice.
func (s *ConfigScreen) rebuildColumns() {
	var ids []string
	if s.config.Managed() {
		visible, err := s.Layout().Visible()
		if err != nil {
			logging.Error("Invalid column layout", "screen", s.config.ID, "error", err)
		}
		ids = visible
	}
	if ids == nil {
		for _, col := range s.config.Columns {
			if !col.Additional {
				ids = append(ids, col.ID)
			}
		}
	}

	if s.namespace != "" {
		ids = slices.DeleteFunc(ids, func(id string) bool { return id == NamespaceColumnID })
	}
	s.columnIDs = ids
	s.SetSize(s.width, s.height)
}

// selectedColumns returns the configured columns picked for display.
func (s *ConfigScreen) selectedColumns() []ColumnConfig {
	picked := sets.New(s.columnIDs...)
	result := []ColumnConfig{}
	for _, col := range s.config.Columns {
		if picked.Has(col.ID) {
			result = append(result, col)
		}
	}
	return result
}

// SetSize updates dimensions and recalculates dynamic column widths
func (s *ConfigScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.table.SetHeight(height)

	selected := s.selectedColumns()
	padding := len(selected) * 2
	availableWidth := width - padding

	// Sort columns by priority (1 first, then 2, then 3)
	sorted := slices.Clone(selected)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	visible := []ColumnConfig{}
	usedWidth := 0
	for _, col := range sorted {
		if s.shouldExcludeColumn(col, availableWidth, usedWidth) {
			continue
		}
		visible = append(visible, col)
		usedWidth += columnWidth(col)
	}

	s.visibleColumns = restoreColumnOrder(selected, visible)
	s.hiddenCount = len(selected) - len(visible)

	fixedTotal := 0
	dynamicCount := 0
	for _, col := range s.visibleColumns {
		if col.Width > 0 {
			fixedTotal += col.Width
		} else {
			dynamicCount++
		}
	}

	dynamicWidth := DynamicColumnMinWidth
	if dynamicCount > 0 {
		dynamicWidth = (width - fixedTotal - len(s.visibleColumns)*2) / dynamicCount
		if dynamicWidth < DynamicColumnMinWidth {
			dynamicWidth = DynamicColumnMinWidth
		}
	}

	cols := make([]table.Column, len(s.visibleColumns))
	for i, col := range s.visibleColumns {
		w := col.Width
		if w == 0 {
			w = dynamicWidth
		}
		cols[i] = table.Column{Title: col.Title, Width: w}
	}

	// SetColumns renders, so rows must not have more cells than columns
	s.table.SetRows([]table.Row{})
	s.table.SetColumns(cols)
	s.table.SetWidth(width)

	s.updateTable()
}

// HiddenColumns returns how many selected columns do not fit the width.
func (s *ConfigScreen) HiddenColumns() int {
	return s.hiddenCount
}

// shouldExcludeColumn reports whether a column is dropped to fit the width.
// Priority 1 columns always show, even if squished.
func (s *ConfigScreen) shouldExcludeColumn(col ColumnConfig, availableWidth int, usedWidth int) bool {
	if col.Priority == 1 {
		return false
	}
	return usedWidth+columnWidth(col) > availableWidth
}

func columnWidth(col ColumnConfig) int {
	if col.Width == 0 {
		return DynamicColumnMinWidth
	}
	return col.Width
}

// restoreColumnOrder puts the fitted columns back in configured order.
func restoreColumnOrder(order, visible []ColumnConfig) []ColumnConfig {
	result := []ColumnConfig{}
	for _, original := range order {
		for _, v := range visible {
			if v.ID == original.ID && v.Field == original.Field {
				result = append(result, v)
				break
			}
		}
	}
	return result
}

// SetFilter applies a filter to the resource list
func (s *ConfigScreen) SetFilter(filter string) {
	s.filter = filter
	s.applyFilter()
}

// applyFilter filters items based on fuzzy search. A leading "!" keeps the
// items that do not match.
func (s *ConfigScreen) applyFilter() {
	if s.filter == "" {
		s.filtered = s.items
		s.updateTable()
		return
	}

	searchStrings := make([]string, len(s.items))
	for i, item := range s.items {
		fields := []string{}
		for _, fieldName := range s.config.SearchFields {
			fields = append(fields, fmt.Sprint(getFieldValue(item, fieldName)))
		}
		searchStrings[i] = strings.ToLower(strings.Join(fields, " "))
	}

	if negated, ok := strings.CutPrefix(s.filter, "!"); ok {
		matchSet := sets.New[int]()
		for _, m := range fuzzy.Find(strings.ToLower(negated), searchStrings) {
			matchSet.Insert(m.Index)
		}
		s.filtered = make([]any, 0, len(s.items))
		for i, item := range s.items {
			if !matchSet.Has(i) {
				s.filtered = append(s.filtered, item)
			}
		}
	} else {
		matches := fuzzy.Find(strings.ToLower(s.filter), searchStrings)
		s.filtered = make([]any, len(matches))
		for i, m := range matches {
			s.filtered[i] = s.items[m.Index]
		}
	}

	s.updateTable()
}

// updateTable rebuilds table rows from filtered items
func (s *ConfigScreen) updateTable() {
	rows := make([]table.Row, len(s.filtered))
	for i, item := range s.filtered {
		row := make(table.Row, len(s.visibleColumns))
		for j, col := range s.visibleColumns {
			val := getFieldValue(item, col.Field)
			if col.Format != nil {
				row[j] = col.Format(val)
			} else {
				row[j] = fmt.Sprint(val)
			}
		}
		rows[i] = row
	}

	s.table.SetRows(rows)

	if len(rows) > 0 {
		cursor := s.table.Cursor()
		if cursor < 0 || cursor >= len(rows) {
			s.table.SetCursor(0)
		}
	}
}

// GetSelectedResource returns the currently selected resource as a map
func (s *ConfigScreen) GetSelectedResource() map[string]any {
	cursor := s.table.Cursor()
	if cursor < 0 || cursor >= len(s.filtered) {
		return nil
	}

	result := make(map[string]any)
	v := reflect.ValueOf(s.filtered[cursor])
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		// Flatten embedded structs (like ResourceMetadata)
		if field.Anonymous && fieldValue.Kind() == reflect.Struct {
			embeddedType := fieldValue.Type()
			for j := 0; j < fieldValue.NumField(); j++ {
				result[strings.ToLower(embeddedType.Field(j).Name)] = fieldValue.Field(j).Interface()
			}
			continue
		}
		result[strings.ToLower(field.Name)] = fieldValue.Interface()
	}
	return result
}

// copySelectedName copies the name of the selected resource.
func (s *ConfigScreen) copySelectedName() tea.Cmd {
	selected := s.GetSelectedResource()
	if selected == nil {
		return nil
	}
	name := fmt.Sprint(selected["name"])
	tr := s.tr

	return func() tea.Msg {
		if err := writeClipboard(name); err != nil {
			return types.ErrorStatusMsg(fmt.Sprintf("Failed to copy to clipboard: %v", err))
		}
		return types.SuccessMsg(tr.T("public~Copied {{name}} to clipboard", name))
	}
}

// getFieldValue extracts a field value by name, including promoted fields of
// embedded structs.
func getFieldValue(obj any, fieldName string) any {
	v := reflect.ValueOf(obj)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return ""
	}

	field := v.FieldByName(fieldName)
	if !field.IsValid() {
		return ""
	}
	return field.Interface()
}

// updateSelectedKey tracks the selected resource (for cursor restoration)
func (s *ConfigScreen) updateSelectedKey() {
	cursor := s.table.Cursor()
	if cursor >= 0 && cursor < len(s.filtered) {
		s.selectedKey = getResourceKey(s.filtered[cursor])
	}
}

// restoreCursorPosition restores cursor to previously selected resource
func (s *ConfigScreen) restoreCursorPosition() {
	if s.selectedKey == "" {
		return
	}
	for i, item := range s.filtered {
		if getResourceKey(item) == s.selectedKey {
			s.table.SetCursor(i)
			return
		}
	}
}

// getResourceKey generates a unique key for a resource (namespace/name)
func getResourceKey(item any) string {
	if r, ok := item.(k8s.Resource); ok {
		return r.GetNamespace() + "/" + r.GetName()
	}
	return fmt.Sprintf("%v/%v", getFieldValue(item, "Namespace"), getFieldValue(item, "Name"))
}
