package clock

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"

	"github.com/jask/palette/internal/command"
	"github.com/jask/palette/internal/database"
	"github.com/jask/palette/internal/database/repository"
	"github.com/jask/palette/internal/logging"
)

type memStore struct {
	alarms []repository.Alarm
	seq    int
}

func (m *memStore) Create(_ context.Context, at int, label string) (repository.Alarm, error) {
	m.seq++
	a := repository.Alarm{ID: fmt.Sprintf("%08x-0000-4000-8000-000000000000", m.seq), AtMinute: at, Label: label}
	m.alarms = append(m.alarms, a)
	return a, nil
}

func (m *memStore) List(context.Context) ([]repository.Alarm, error) {
	return append([]repository.Alarm(nil), m.alarms...), nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	for i, a := range m.alarms {
		if a.ID == id {
			m.alarms = append(m.alarms[:i], m.alarms[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memStore) DeleteAll(context.Context) (int, error) {
	n := len(m.alarms)
	m.alarms = nil
	return n, nil
}

type host struct {
	queries []string
	submits []bool
}

func (h *host) ChangeQuery(query string, submit bool) {
	h.queries = append(h.queries, query)
	h.submits = append(h.submits, submit)
}

func (h *host) last() string {
	if len(h.queries) == 0 {
		return ""
	}
	return h.queries[len(h.queries)-1]
}

var fixedNow = time.Date(2026, 10, 18, 9, 41, 0, 0, time.UTC)

func newTestTree(t *testing.T, store Store) (*command.Tree, *host) {
	t.Helper()
	h := &host{}
	root := Commands(store, Settings{Location: time.UTC, Now: func() time.Time { return fixedNow }})
	tree, err := command.NewTree(&command.Plugin{
		ActionKeyword: "clock",
		IconPath:      "icons/clock.png",
		Host:          h,
		Logger:        logging.Discard(),
	}, root)
	require.NoError(t, err)
	return tree, h
}

func query(t *testing.T, tree *command.Tree, input string) []command.Suggestion {
	t.Helper()
	tokens, ok := command.Tokenize(input, "clock")
	require.True(t, ok, "input %q", input)
	return tree.Query(context.Background(), tokens)
}

func titles(s []command.Suggestion) []string {
	out := make([]string, len(s))
	for i := range s {
		out[i] = s[i].Title
	}
	return out
}

func TestTopLevelListing(t *testing.T) {
	tree, _ := newTestTree(t, &memStore{})
	require.Equal(t, []string{"Alarms", "Current time"}, titles(query(t, tree, "clock")))
	require.Equal(t, []string{"Set alarm", "List alarms", "Clear alarm"}, titles(query(t, tree, "clock alarm")))
	require.Equal(t, []string{"Set alarm"}, titles(query(t, tree, "clock alarm se")))

	got := query(t, tree, "clock alarm")
	require.Equal(t, "icons/alarm.png", got[0].IconPath, "children inherit the alarm icon")
	require.Equal(t, "icons/clock.png", query(t, tree, "clock")[1].IconPath)
}

func TestSetInvalidTimeRequeriesFromRoot(t *testing.T) {
	store := &memStore{}
	tree, h := newTestTree(t, store)

	got := query(t, tree, "clock alarm set 25:99")
	require.Len(t, got, 1)
	require.Equal(t, "Set alarm for 25:99", got[0].Title)

	res, err := got[0].Select(context.Background())
	require.NoError(t, err)
	require.False(t, res.Hide)
	require.Equal(t, command.ErrorTitle, res.ForcedTitle)
	require.Contains(t, res.ForcedSubtitle, "25:99")
	require.Equal(t, "clock alarm set 25:99", h.last())
	require.False(t, h.submits[len(h.submits)-1])
	require.Empty(t, store.alarms)
}

func TestSetStoresAlarmAndReturnsToCommand(t *testing.T) {
	store := &memStore{}
	tree, h := newTestTree(t, store)

	got := query(t, tree, "clock alarm set 7:30 wake up")
	require.Len(t, got, 1)
	require.Contains(t, got[0].Subtitle, "wake up")

	res, err := got[0].Select(context.Background())
	require.NoError(t, err)
	require.False(t, res.Failed())
	require.Equal(t, "clock alarm set", h.last())
	require.Len(t, store.alarms, 1)
	require.Equal(t, 7*60+30, store.alarms[0].AtMinute)
	require.Equal(t, "wake up", store.alarms[0].Label)

	require.Equal(t, []string{"Type a time"}, titles(query(t, tree, "clock alarm set")))
}

func TestListAndClear(t *testing.T) {
	store := &memStore{}
	tree, _ := newTestTree(t, store)
	require.Equal(t, []string{"No alarms set"}, titles(query(t, tree, "clock alarm list")))

	ctx := context.Background()
	first, _ := store.Create(ctx, 6*60, "gym")
	_, _ = store.Create(ctx, 8*60, "work")

	require.Equal(t, []string{"06:00  gym", "08:00  work"}, titles(query(t, tree, "clock alarm list")))
	require.Equal(t, []string{"Clear 06:00  gym", "Clear 08:00  work", "Clear all alarms"}, titles(query(t, tree, "clock alarm clear")))

	byLabel := query(t, tree, "clock alarm clear GYM")
	require.Equal(t, []string{"Clear 06:00  gym"}, titles(byLabel))
	res, err := byLabel[0].Select(ctx)
	require.NoError(t, err)
	require.False(t, res.Failed())
	require.Len(t, store.alarms, 1)
	require.NotEqual(t, first.ID, store.alarms[0].ID)

	all := query(t, tree, "clock alarm clear all")
	require.Equal(t, "Clear all alarms", all[len(all)-1].Title)
	_, err = all[len(all)-1].Select(ctx)
	require.NoError(t, err)
	require.Empty(t, store.alarms)
}

func TestClearUnknownIDIsValidationError(t *testing.T) {
	store := &memStore{}
	tree, h := newTestTree(t, store)
	_, _ = store.Create(context.Background(), 60, "")

	got := query(t, tree, "clock alarm clear zz")
	require.Len(t, got, 1)
	res, err := got[0].Select(context.Background())
	require.NoError(t, err)
	require.True(t, res.Failed())
	require.Contains(t, res.ForcedSubtitle, "zz")
	require.Equal(t, "clock alarm clear zz", h.last())
	require.Len(t, store.alarms, 1)
}

func TestTimeCommand(t *testing.T) {
	tree, h := newTestTree(t, &memStore{})

	local := query(t, tree, "clock time")
	require.Len(t, local, 1)
	require.Equal(t, "09:41", local[0].Title)

	tokyo := query(t, tree, "clock time Asia/Tokyo")
	require.Equal(t, "18:41", tokyo[0].Title)
	res, err := tokyo[0].Select(context.Background())
	require.NoError(t, err)
	require.True(t, res.Hide)
	require.Empty(t, h.queries, "a valid zone keeps the query as is")

	bad := query(t, tree, "clock time Mars/Olympus")
	res, err = bad[0].Select(context.Background())
	require.NoError(t, err)
	require.False(t, res.Hide)
	require.True(t, strings.Contains(res.ForcedSubtitle, "Mars/Olympus"))
	require.Equal(t, "clock time Mars/Olympus", h.last())
}

func TestSetPersistsThroughSQLite(t *testing.T) {
	t.Parallel()

	db, err := database.OpenMigrated(filepath.Join(t.TempDir(), "clock.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := repository.NewAlarmRepo(db)
	tree, _ := newTestTree(t, repo)

	got := query(t, tree, "clock alarm set 23:59 last call")
	_, err = got[0].Select(context.Background())
	require.NoError(t, err)

	list := query(t, tree, "clock alarm list")
	require.Equal(t, []string{"23:59  last call"}, titles(list))
}
