package tui

// helpBinding represents a single keybinding entry for the help view
type helpBinding struct {
	key  string
	desc string
}

// bindingsForView returns the help bindings for the given view state
func bindingsForView(vs ViewState) []helpBinding {
	if vs == CategoryDetailView {
		return categoryDetailBindings()
	}
	return categoryListBindings()
}

func categoryListBindings() []helpBinding {
	return []helpBinding{
		{"j", "Navigate down"},
		{"k", "Navigate up"},
		{"g", "First category"},
		{"G", "Last category"},
		{"enter", "Open category"},
		{"r", "Reload"},
		{"?", "Help"},
		{"q", "Quit"},
	}
}

func categoryDetailBindings() []helpBinding {
	return []helpBinding{
		{"j", "Navigate down"},
		{"k", "Navigate up"},
		{"y", "Yank slug"},
		{"-", "Back to categories"},
		{"H", "Previous category"},
		{"L", "Next category"},
		{"?", "Help"},
		{"q", "Quit"},
	}
}
