package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chris/catsort/internal/db"
	"github.com/chris/catsort/internal/filters"
	"github.com/chris/catsort/internal/site"
	"github.com/chris/catsort/pkg/models"
)

// ViewState represents which view is currently displayed
type ViewState int

const (
	CategoryListView ViewState = iota
	CategoryDetailView
)

// CategoryItem is one row of the category list
type CategoryItem struct {
	Name  string
	Posts []models.Post
}

// Model represents the TUI state
type Model struct {
	dbPath string

	// Data, largest category first
	categories []CategoryItem
	err        error

	// View state
	viewState          ViewState
	detailPosts        []models.Post
	detailPostIdx      int
	detailScrollOffset int
	showHelp           bool
	status             string

	// Selection
	selectedIdx int

	// UI dimensions
	width  int
	height int

	// Focus
	focused bool
}

// New creates a new Model reading posts from the database at dbPath
func New(dbPath string) *Model {
	return &Model{
		dbPath:  dbPath,
		focused: true,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.loadCategories
}

// loadCategories ranks the categories of every stored post
func (m *Model) loadCategories() tea.Msg {
	database, err := db.New(m.dbPath)
	if err != nil {
		return errMsg{err}
	}
	defer database.Close()

	posts, err := database.ListPosts()
	if err != nil {
		return errMsg{err}
	}

	ranked := filters.SortByLenDescending(site.GroupByCategory(posts))

	items := make([]CategoryItem, 0, len(ranked))
	for _, pair := range ranked {
		items = append(items, CategoryItem{Name: pair.Key, Posts: pair.Value})
	}

	return categoriesLoadedMsg{categories: items}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureDetailPostVisible()
		return m, nil

	case tea.FocusMsg:
		m.focused = true
		return m, nil

	case tea.BlurMsg:
		m.focused = false
		return m, nil

	case categoriesLoadedMsg:
		m.categories = msg.categories
		m.err = nil
		m.viewState = CategoryListView
		if m.selectedIdx >= len(m.categories) {
			m.selectedIdx = 0
		}
		return m, nil

	case yankResultMsg:
		if msg.err != nil {
			m.status = "Copy failed: " + msg.err.Error()
		} else {
			m.status = "Copied " + msg.text
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	m.status = ""

	if m.showHelp {
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "?", "esc":
			m.showHelp = false
		}
		return m, nil
	}

	if msg.String() == "?" {
		m.showHelp = true
		return m, nil
	}

	switch m.viewState {
	case CategoryDetailView:
		return m.handleDetailKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m *Model) handleListKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		if m.selectedIdx < len(m.categories)-1 {
			m.selectedIdx++
		}
		return m, nil

	case "k", "up":
		if m.selectedIdx > 0 {
			m.selectedIdx--
		}
		return m, nil

	case "g":
		m.selectedIdx = 0
		return m, nil

	case "G":
		if len(m.categories) > 0 {
			m.selectedIdx = len(m.categories) - 1
		}
		return m, nil

	case "enter", "l":
		if len(m.categories) > 0 {
			m.enterDetailView()
		}
		return m, nil

	case "r":
		return m, m.loadCategories
	}

	return m, nil
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		if m.detailPostIdx < len(m.detailPosts)-1 {
			m.detailPostIdx++
			m.ensureDetailPostVisible()
		}
		return m, nil

	case "k", "up":
		if m.detailPostIdx > 0 {
			m.detailPostIdx--
			m.ensureDetailPostVisible()
		}
		return m, nil

	case "esc", "-", "h":
		m.viewState = CategoryListView
		return m, nil

	case "H":
		// Switch to previous category
		if m.selectedIdx > 0 {
			m.selectedIdx--
			m.enterDetailView()
		}
		return m, nil

	case "L":
		// Switch to next category
		if m.selectedIdx < len(m.categories)-1 {
			m.selectedIdx++
			m.enterDetailView()
		}
		return m, nil

	case "y":
		if len(m.detailPosts) > 0 {
			return m, yankToClipboard(m.detailPosts[m.detailPostIdx].Slug)
		}
		return m, nil
	}

	return m, nil
}

// enterDetailView shows the posts of the selected category, newest first
func (m *Model) enterDetailView() {
	category := m.categories[m.selectedIdx]

	posts := make([]models.Post, len(category.Posts))
	copy(posts, category.Posts)
	sorted := filters.SortPairsDescending(postPairs(posts), func(published int64) int {
		return int(published)
	})
	for i, pair := range sorted {
		posts[i] = pair.Key
	}

	m.viewState = CategoryDetailView
	m.detailPosts = posts
	m.detailPostIdx = 0
	m.detailScrollOffset = 0
}

// postPairs pairs posts with their publish time for ranking
func postPairs(posts []models.Post) []filters.Pair[models.Post, int64] {
	pairs := make([]filters.Pair[models.Post, int64], len(posts))
	for i, p := range posts {
		pairs[i] = filters.Pair[models.Post, int64]{Key: p, Value: p.PublishedAt}
	}
	return pairs
}

// ensureDetailPostVisible adjusts detailScrollOffset to keep the selected post in view
func (m *Model) ensureDetailPostVisible() {
	if m.height == 0 || len(m.detailPosts) == 0 {
		return
	}
	avail := m.height - 6
	if avail < 1 {
		avail = 1
	}
	if m.detailPostIdx < m.detailScrollOffset {
		m.detailScrollOffset = m.detailPostIdx
	}
	if m.detailPostIdx >= m.detailScrollOffset+avail {
		m.detailScrollOffset = m.detailPostIdx - avail + 1
	}
}

// View implements tea.Model
func (m *Model) View() string {
	return m.renderView()
}

// Messages
type categoriesLoadedMsg struct {
	categories []CategoryItem
}

type errMsg struct {
	err error
}

// Getters for testing
func (m *Model) SelectedIdx() int {
	return m.selectedIdx
}

func (m *Model) Categories() []CategoryItem {
	return m.categories
}

func (m *Model) Focused() bool {
	return m.focused
}

func (m *Model) ViewState() ViewState {
	return m.viewState
}

func (m *Model) DetailPosts() []models.Post {
	return m.detailPosts
}

func (m *Model) DetailPostIdx() int {
	return m.detailPostIdx
}

func (m *Model) DetailScrollOffset() int {
	return m.detailScrollOffset
}

func (m *Model) Err() error {
	return m.err
}
