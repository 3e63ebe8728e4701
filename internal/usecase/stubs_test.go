package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bereanlabs/daily-puzzles/internal/domain/assignment"
	"github.com/bereanlabs/daily-puzzles/internal/domain/connections"
	"github.com/bereanlabs/daily-puzzles/internal/domain/crossword"
	"github.com/bereanlabs/daily-puzzles/internal/domain/matchup"
	"github.com/bereanlabs/daily-puzzles/internal/domain/progress"
	"github.com/bereanlabs/daily-puzzles/internal/domain/puzzle"
	"github.com/bereanlabs/daily-puzzles/internal/domain/submission"
	"github.com/bereanlabs/daily-puzzles/internal/domain/verse"
	"github.com/bereanlabs/daily-puzzles/internal/domain/whoami"
	"github.com/bereanlabs/daily-puzzles/internal/domain/wordle"
	"github.com/bereanlabs/daily-puzzles/internal/domain/wordsearch"
	"github.com/bereanlabs/daily-puzzles/internal/platform/cache"
)

type stubPuzzleRepo struct {
	mu   sync.Mutex
	defs map[string]puzzle.Definition
	err  error
}

func newStubPuzzleRepo(defs ...puzzle.Definition) *stubPuzzleRepo {
	repo := &stubPuzzleRepo{defs: make(map[string]puzzle.Definition)}
	for _, def := range defs {
		repo.defs[def.GameID] = def
	}
	return repo
}

func (r *stubPuzzleRepo) GetByGameID(_ context.Context, gameID string) (puzzle.Definition, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return puzzle.Definition{}, false, r.err
	}
	def, ok := r.defs[gameID]
	return def, ok, nil
}

type stubAssignmentRepo struct {
	mu    sync.Mutex
	items map[string]assignment.Assignment
	err   error
}

func newStubAssignmentRepo() *stubAssignmentRepo {
	return &stubAssignmentRepo{items: make(map[string]assignment.Assignment)}
}

func assignmentKey(userID, gameID string) string {
	return userID + "::" + gameID
}

func (r *stubAssignmentRepo) GetByUserAndGame(_ context.Context, userID, gameID string) (assignment.Assignment, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return assignment.Assignment{}, false, r.err
	}
	item, ok := r.items[assignmentKey(userID, gameID)]
	return item, ok, nil
}

func (r *stubAssignmentRepo) Create(_ context.Context, item assignment.Assignment) (assignment.Assignment, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return assignment.Assignment{}, false, r.err
	}
	key := assignmentKey(item.UserID, item.GameID)
	if existing, ok := r.items[key]; ok {
		return existing, false, nil
	}
	r.items[key] = item
	return item, true, nil
}

type stubProgressRepo struct {
	mu        sync.Mutex
	items     map[string]progress.Progress
	deleteErr error
}

func newStubProgressRepo() *stubProgressRepo {
	return &stubProgressRepo{items: make(map[string]progress.Progress)}
}

func (r *stubProgressRepo) GetByUserAndGame(_ context.Context, userID, gameID string) (progress.Progress, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[assignmentKey(userID, gameID)]
	return item, ok, nil
}

func (r *stubProgressRepo) Upsert(_ context.Context, item progress.Progress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[assignmentKey(item.UserID, item.GameID)] = item
	return nil
}

func (r *stubProgressRepo) Delete(_ context.Context, userID, gameID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.items, assignmentKey(userID, gameID))
	return nil
}

func (r *stubProgressRepo) ListUpdatedBefore(_ context.Context, cutoff time.Time, limit int) ([]progress.Progress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []progress.Progress
	for _, item := range r.items {
		if item.UpdatedAt.Before(cutoff) {
			out = append(out, item)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type stubSubmissionRepo struct {
	mu    sync.Mutex
	items map[string]submission.Submission
}

func newStubSubmissionRepo() *stubSubmissionRepo {
	return &stubSubmissionRepo{items: make(map[string]submission.Submission)}
}

func (r *stubSubmissionRepo) GetByUserAndGame(_ context.Context, userID, gameID string) (submission.Submission, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[assignmentKey(userID, gameID)]
	return item, ok, nil
}

func (r *stubSubmissionRepo) CreateOrKeepBest(_ context.Context, item submission.Submission) (submission.Submission, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := assignmentKey(item.UserID, item.GameID)
	existing, ok := r.items[key]
	if ok && existing.Score >= item.Score {
		return existing, false, nil
	}
	r.items[key] = item
	return item, true, nil
}

type stubNotifier struct {
	mu    sync.Mutex
	calls []submission.Submission
	done  chan struct{}
}

func newStubNotifier() *stubNotifier {
	return &stubNotifier{done: make(chan struct{}, 8)}
}

func (n *stubNotifier) NotifyCompleted(_ context.Context, item submission.Submission) error {
	n.mu.Lock()
	n.calls = append(n.calls, item)
	n.mu.Unlock()
	n.done <- struct{}{}
	return nil
}

func (n *stubNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

type stubIDGenerator struct {
	mu   sync.Mutex
	next int
}

func (g *stubIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return "sub-" + string(rune('0'+g.next)), nil
}

// Fixture definitions, one per game type, all published for the same day.

const fixtureDay = "2026-08-31"

func fixtureDayTime(t *testing.T) time.Time {
	t.Helper()
	day, err := time.Parse("2006-01-02", fixtureDay)
	if err != nil {
		t.Fatalf("parse fixture day: %v", err)
	}
	return day
}

func wordleDefinition() puzzle.Definition {
	return puzzle.Definition{
		GameID:   "wordle-" + fixtureDay,
		GameType: puzzle.GameTypeWordle,
		Variants: []puzzle.Variant{
			{ID: "v1", Wordle: &wordle.Content{Answer: "FAITH"}},
			{ID: "v2", Wordle: &wordle.Content{Answer: "GRACE"}},
		},
	}
}

func connectionsDefinition() puzzle.Definition {
	categories := []connections.Category{
		{Name: "Gospels", Words: []string{"Matthew", "Mark", "Luke", "John"}},
		{Name: "Apostles", Words: []string{"Peter", "Andrew", "James", "Thomas"}},
		{Name: "Rivers", Words: []string{"Jordan", "Nile", "Tigris", "Euphrates"}},
		{Name: "Mountains", Words: []string{"Sinai", "Zion", "Carmel", "Horeb"}},
		{Name: "Prophets", Words: []string{"Isaiah", "Jeremiah", "Ezekiel", "Daniel"}},
	}
	return puzzle.Definition{
		GameID:   "connections-" + fixtureDay,
		GameType: puzzle.GameTypeConnections,
		Variants: []puzzle.Variant{
			{ID: "v1", Connections: &connections.Content{Categories: categories}},
		},
	}
}

func matchupDefinition() puzzle.Definition {
	pairs := []matchup.Pair{
		{Left: "David", Right: "Goliath"},
		{Left: "Ruth", Right: "Boaz"},
		{Left: "Moses", Right: "Aaron"},
		{Left: "Paul", Right: "Silas"},
		{Left: "Mary", Right: "Joseph"},
		{Left: "Abraham", Right: "Sarah"},
		{Left: "Isaac", Right: "Rebekah"},
		{Left: "Jacob", Right: "Rachel"},
	}
	return puzzle.Definition{
		GameID:   "matchup-" + fixtureDay,
		GameType: puzzle.GameTypeMatchup,
		Variants: []puzzle.Variant{
			{ID: "v1", Matchup: &matchup.Content{Pairs: pairs}},
		},
	}
}

func verseDefinition() puzzle.Definition {
	return puzzle.Definition{
		GameID:   "verse-" + fixtureDay,
		GameType: puzzle.GameTypeVerse,
		Variants: []puzzle.Variant{
			{ID: "v1", Verse: &verse.Content{
				Text:      "The Lord is my shepherd",
				Reference: "Psalm 23:1",
			}},
		},
	}
}

func whoamiDefinition() puzzle.Definition {
	return puzzle.Definition{
		GameID:   "whoami-" + fixtureDay,
		GameType: puzzle.GameTypeWhoAmI,
		Variants: []puzzle.Variant{
			{ID: "v1", WhoAmI: &whoami.Content{Answer: "MOSES", Hint: "Led the exodus"}},
		},
	}
}

func wordsearchDefinition() puzzle.Definition {
	return puzzle.Definition{
		GameID:   "wordsearch-" + fixtureDay,
		GameType: puzzle.GameTypeWordSearch,
		Variants: []puzzle.Variant{
			{ID: "v1", WordSearch: &wordsearch.Content{
				Grid:  []string{"AMEN", "CLIP", "EXAM", "DOGS"},
				Words: []string{"AMEN", "ACED", "ALAS", "EXAM"},
			}},
		},
	}
}

func crosswordDefinition() puzzle.Definition {
	return puzzle.Definition{
		GameID:   "crossword-" + fixtureDay,
		GameType: puzzle.GameTypeCrossword,
		Variants: []puzzle.Variant{
			{ID: "v1", Crossword: &crossword.Content{
				Rows: 4,
				Cols: 4,
				Clues: []crossword.Clue{
					{Number: 1, Direction: crossword.Across, Row: 0, Col: 0, Answer: "ACTS", Text: "Luke's sequel"},
					{Number: 3, Direction: crossword.Across, Row: 2, Col: 0, Answer: "EELS", Text: "Slippery swimmers"},
					{Number: 1, Direction: crossword.Down, Row: 0, Col: 0, Answer: "AMEN", Text: "Prayer closer"},
					{Number: 2, Direction: crossword.Down, Row: 0, Col: 2, Answer: "TOLL", Text: "Bell sound"},
				},
			}},
		},
	}
}

func allDefinitions() []puzzle.Definition {
	return []puzzle.Definition{
		wordleDefinition(),
		connectionsDefinition(),
		matchupDefinition(),
		verseDefinition(),
		whoamiDefinition(),
		wordsearchDefinition(),
		crosswordDefinition(),
	}
}

// testServices is the fully wired service graph over stub repositories.
type testServices struct {
	puzzles     *stubPuzzleRepo
	assignments *stubAssignmentRepo
	progress    *stubProgressRepo
	submissions *stubSubmissionRepo
	notifier    *stubNotifier

	assignmentSvc  *AssignmentService
	progressSvc    *ProgressService
	verifySvc      *VerifyService
	submissionSvc  *SubmissionService
	sessionSvc     *SessionService
	maintenanceSvc *MaintenanceService
}

func newTestServices() *testServices {
	s := &testServices{
		puzzles:     newStubPuzzleRepo(allDefinitions()...),
		assignments: newStubAssignmentRepo(),
		progress:    newStubProgressRepo(),
		submissions: newStubSubmissionRepo(),
		notifier:    newStubNotifier(),
	}

	s.assignmentSvc = NewAssignmentService(s.puzzles, s.assignments, cache.NewStore(time.Minute))
	s.progressSvc = NewProgressService(s.progress)
	s.verifySvc = NewVerifyService(s.assignmentSvc)
	s.submissionSvc = NewSubmissionService(s.submissions, s.assignmentSvc, s.progressSvc, s.notifier, &stubIDGenerator{}, nil)
	s.sessionSvc = NewSessionService(s.assignmentSvc, s.progressSvc, s.submissionSvc)
	s.maintenanceSvc = NewMaintenanceService(s.progress, DefaultProgressRetention, nil)

	return s
}
