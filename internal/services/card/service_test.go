package card

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"math/rand"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/events"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/reindex"
	"github.com/thenoetrevino/lanes/internal/testutil"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

// recordingPublisher keeps every published event
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

// brokenPublisher rejects every event
type brokenPublisher struct{}

func (brokenPublisher) Publish(context.Context, events.Event) error {
	return errors.New("broker down")
}

func (brokenPublisher) Close() error { return nil }

// failingRepo fails every SaveCardPositions after the underlying write ran,
// so the transaction has to undo real changes.
type failingRepo struct {
	*database.Repository
}

type failingMoveStore struct {
	database.MoveStore
}

func (r failingRepo) WithinTx(ctx context.Context, fn func(database.MoveStore) error) error {
	return r.Repository.WithinTx(ctx, func(store database.MoveStore) error {
		return fn(failingMoveStore{store})
	})
}

func (s failingMoveStore) SaveCardPositions(ctx context.Context, assignments []reindex.Assignment) error {
	if err := s.MoveStore.SaveCardPositions(ctx, assignments); err != nil {
		return err
	}
	return errors.New("disk on fire")
}

type fixture struct {
	svc     Service
	repo    *database.Repository
	pub     *recordingPublisher
	boardID int

	// Columns X and Y, cards A, B, C in X and D, E in Y
	x, y          int
	a, b, c, d, e int
	ids           []int
}

// setupBoard builds X=[A,B,C], Y=[D,E]
func setupBoard(t *testing.T) *fixture {
	t.Helper()
	db := testutil.SetupTestDB(t)
	boardID, cols := testutil.CreateTestBoard(t, db, "Board", "X", "Y")
	xs := testutil.CreateTestCards(t, db, cols[0], "A", "B", "C")
	ys := testutil.CreateTestCards(t, db, cols[1], "D", "E")

	repo := database.NewRepository(db)
	pub := &recordingPublisher{}
	f := &fixture{
		svc:     NewService(repo, pub),
		repo:    repo,
		pub:     pub,
		boardID: boardID,
		x:       cols[0],
		y:       cols[1],
		ids:     append(append([]int{}, xs...), ys...),
	}
	f.a, f.b, f.c = xs[0], xs[1], xs[2]
	f.d, f.e = ys[0], ys[1]
	return f
}

func (f *fixture) order(t *testing.T, columnID int) []int {
	t.Helper()
	cards, err := f.repo.ListCardsByColumn(context.Background(), columnID)
	require.NoError(t, err)
	for i, c := range cards {
		require.Equal(t, i, c.Position, "positions must be contiguous")
		require.Equal(t, columnID, c.ColumnID)
	}
	return cards.IDs()
}

// ============================================================================
// MOVE
// ============================================================================

func TestMoveCard_WithinColumn(t *testing.T) {
	f := setupBoard(t)
	ctx := context.Background()

	err := f.svc.MoveCard(ctx, MoveCardRequest{CardID: f.b, DestinationColumnID: f.x, DestinationIndex: 0})
	require.NoError(t, err)

	assert.Equal(t, []int{f.b, f.a, f.c}, f.order(t, f.x))
	assert.Equal(t, []int{f.d, f.e}, f.order(t, f.y))

	evs := f.pub.Events()
	require.Len(t, evs, 1)
	assert.Equal(t, events.EventCardMoved, evs[0].Type)
	assert.Equal(t, f.boardID, evs[0].BoardID)
	assert.Equal(t, f.b, evs[0].CardID)
	assert.Equal(t, f.x, evs[0].ColumnID)
}

func TestMoveCard_AcrossColumns(t *testing.T) {
	f := setupBoard(t)
	ctx := context.Background()

	err := f.svc.MoveCard(ctx, MoveCardRequest{CardID: f.b, DestinationColumnID: f.y, DestinationIndex: 1})
	require.NoError(t, err)

	assert.Equal(t, []int{f.a, f.c}, f.order(t, f.x))
	assert.Equal(t, []int{f.d, f.b, f.e}, f.order(t, f.y))

	moved, err := f.svc.GetCard(ctx, f.b)
	require.NoError(t, err)
	assert.Equal(t, f.y, moved.ColumnID)
	assert.Equal(t, 1, moved.Position)
}

func TestMoveCard_OnlyCardOutOfRangeIsNoop(t *testing.T) {
	db := testutil.SetupTestDB(t)
	_, cols := testutil.CreateTestBoard(t, db, "Board", "X")
	a := testutil.CreateTestCard(t, db, cols[0], "A")
	pub := &recordingPublisher{}
	svc := NewService(database.NewRepository(db), pub)

	err := svc.MoveCard(context.Background(), MoveCardRequest{CardID: a, DestinationColumnID: cols[0], DestinationIndex: 5})
	require.NoError(t, err)

	card, err := svc.GetCard(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, 0, card.Position)
	assert.Empty(t, pub.Events(), "a no-op move publishes nothing")
}

func TestMoveCard_UnknownCard(t *testing.T) {
	f := setupBoard(t)

	err := f.svc.MoveCard(context.Background(), MoveCardRequest{CardID: 9999, DestinationColumnID: f.x})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCardNotFound)
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.Equal(t, []int{f.a, f.b, f.c}, f.order(t, f.x))
	assert.Equal(t, []int{f.d, f.e}, f.order(t, f.y))
	assert.Empty(t, f.pub.Events())
}

func TestMoveCard_UnknownColumn(t *testing.T) {
	f := setupBoard(t)

	err := f.svc.MoveCard(context.Background(), MoveCardRequest{CardID: f.a, DestinationColumnID: 9999})
	assert.ErrorIs(t, err, ErrColumnNotFound)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, []int{f.a, f.b, f.c}, f.order(t, f.x))
}

func TestMoveCard_CrossBoardRejected(t *testing.T) {
	f := setupBoard(t)
	ctx := context.Background()

	other, err := f.repo.CreateBoard(ctx, "Other", []string{"Elsewhere"})
	require.NoError(t, err)
	cols, err := f.repo.ListColumnsByBoard(ctx, other.ID)
	require.NoError(t, err)

	err = f.svc.MoveCard(ctx, MoveCardRequest{CardID: f.a, DestinationColumnID: cols[0].ID})
	assert.ErrorIs(t, err, ErrCrossBoardMove)
	assert.ErrorIs(t, err, models.ErrInvalidTarget)
	assert.Equal(t, []int{f.a, f.b, f.c}, f.order(t, f.x))
}

func TestMoveCard_UnresolvedIDs(t *testing.T) {
	tests := []struct {
		name string
		req  func(f *fixture) MoveCardRequest
		want error
	}{
		{"zero card", func(f *fixture) MoveCardRequest {
			return MoveCardRequest{CardID: 0, DestinationColumnID: f.x}
		}, ErrCardNotFound},
		{"negative card", func(f *fixture) MoveCardRequest {
			return MoveCardRequest{CardID: -7, DestinationColumnID: f.x}
		}, ErrCardNotFound},
		{"zero column", func(f *fixture) MoveCardRequest {
			return MoveCardRequest{CardID: f.a, DestinationColumnID: 0}
		}, ErrColumnNotFound},
		{"negative column", func(f *fixture) MoveCardRequest {
			return MoveCardRequest{CardID: f.a, DestinationColumnID: -1}
		}, ErrColumnNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupBoard(t)
			err := f.svc.MoveCard(context.Background(), tt.req(f))
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, models.ErrNotFound)
			assert.NotErrorIs(t, err, models.ErrValidation)
			assert.Equal(t, []int{f.a, f.b, f.c}, f.order(t, f.x))
			assert.Empty(t, f.pub.Events())
		})
	}
}

func TestMoveCard_IndexClamping(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  func(f *fixture) ([]int, []int)
	}{
		{"negative inserts first", -3, func(f *fixture) ([]int, []int) {
			return []int{f.b, f.c}, []int{f.a, f.d, f.e}
		}},
		{"past end appends", 99, func(f *fixture) ([]int, []int) {
			return []int{f.b, f.c}, []int{f.d, f.e, f.a}
		}},
		{"exact end appends", 2, func(f *fixture) ([]int, []int) {
			return []int{f.b, f.c}, []int{f.d, f.e, f.a}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupBoard(t)
			err := f.svc.MoveCard(context.Background(), MoveCardRequest{CardID: f.a, DestinationColumnID: f.y, DestinationIndex: tt.index})
			require.NoError(t, err)

			wantX, wantY := tt.want(f)
			assert.Equal(t, wantX, f.order(t, f.x))
			assert.Equal(t, wantY, f.order(t, f.y))
		})
	}
}

func TestMoveCard_IntoEmptyColumn(t *testing.T) {
	f := setupBoard(t)
	ctx := context.Background()

	empty, err := f.repo.CreateColumn(ctx, f.boardID, "Z")
	require.NoError(t, err)

	require.NoError(t, f.svc.MoveCard(ctx, MoveCardRequest{CardID: f.c, DestinationColumnID: empty.ID, DestinationIndex: 7}))
	assert.Equal(t, []int{f.c}, f.order(t, empty.ID))
	assert.Equal(t, []int{f.a, f.b}, f.order(t, f.x))
}

func TestMoveCard_PersistenceFailureRollsBack(t *testing.T) {
	f := setupBoard(t)
	pub := &recordingPublisher{}
	svc := NewService(failingRepo{f.repo}, pub)

	err := svc.MoveCard(context.Background(), MoveCardRequest{CardID: f.b, DestinationColumnID: f.y, DestinationIndex: 0})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrPersistence)

	// Nothing from the failed transaction is visible
	assert.Equal(t, []int{f.a, f.b, f.c}, f.order(t, f.x))
	assert.Equal(t, []int{f.d, f.e}, f.order(t, f.y))
	assert.Empty(t, pub.Events())
}

func TestMoveCard_ConcurrentMovesKeepColumnsContiguous(t *testing.T) {
	f := setupBoard(t)
	ctx := context.Background()
	columns := []int{f.x, f.y}

	const workers, movesPerWorker = 8, 25
	var wg sync.WaitGroup
	errs := make(chan error, workers*movesPerWorker)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for i := 0; i < movesPerWorker; i++ {
				req := MoveCardRequest{
					CardID:              f.ids[rng.Intn(len(f.ids))],
					DestinationColumnID: columns[rng.Intn(len(columns))],
					DestinationIndex:    rng.Intn(7) - 1,
				}
				if err := f.svc.MoveCard(ctx, req); err != nil {
					errs <- err
				}
			}
		}(int64(w))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent move failed: %v", err)
	}

	require.NoError(t, f.repo.CheckIntegrity(ctx, f.boardID))

	seen := append(f.order(t, f.x), f.order(t, f.y)...)
	assert.ElementsMatch(t, f.ids, seen, "every card lives in exactly one column")
}

func TestMoveCard_ConcurrentMovesAcrossHandles(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shared.db")

	// Two handles on one file behave like the CLI running next to the server
	handles := make([]*sql.DB, 2)
	for i := range handles {
		db, err := database.Open(ctx, path, database.DefaultBusyTimeout)
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		handles[i] = db
	}

	boardID, cols := testutil.CreateTestBoard(t, handles[0], "Board", "X", "Y")
	ids := append(testutil.CreateTestCards(t, handles[0], cols[0], "A", "B", "C"),
		testutil.CreateTestCards(t, handles[0], cols[1], "D", "E")...)

	const workersPerHandle, movesPerWorker = 2, 50
	var wg sync.WaitGroup
	errs := make(chan error, len(handles)*workersPerHandle*movesPerWorker)
	for h, db := range handles {
		svc := NewService(database.NewRepository(db), nil)
		for w := 0; w < workersPerHandle; w++ {
			wg.Add(1)
			go func(seed int64) {
				defer wg.Done()
				rng := rand.New(rand.NewSource(seed))
				for i := 0; i < movesPerWorker; i++ {
					req := MoveCardRequest{
						CardID:              ids[rng.Intn(len(ids))],
						DestinationColumnID: cols[rng.Intn(len(cols))],
						DestinationIndex:    rng.Intn(6),
					}
					if err := svc.MoveCard(ctx, req); err != nil {
						errs <- err
					}
				}
			}(int64(h*workersPerHandle + w))
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("move across handles failed: %v", err)
	}

	repo := database.NewRepository(handles[1])
	require.NoError(t, repo.CheckIntegrity(ctx, boardID))
	var seen []int
	for _, col := range cols {
		cards, err := repo.ListCardsByColumn(ctx, col)
		require.NoError(t, err)
		seen = append(seen, cards.IDs()...)
	}
	assert.ElementsMatch(t, ids, seen)
}

// ============================================================================
// CRUD
// ============================================================================

func TestCreateCard(t *testing.T) {
	f := setupBoard(t)

	card, err := f.svc.CreateCard(context.Background(), CreateCardRequest{
		ColumnID:    f.y,
		Title:       "  New card  ",
		Description: "Some **markdown**",
	})
	require.NoError(t, err)
	assert.Equal(t, "New card", card.Title)
	assert.Equal(t, 2, card.Position, "cards are appended")
	assert.Equal(t, []int{f.d, f.e, card.ID}, f.order(t, f.y))

	evs := f.pub.Events()
	require.Len(t, evs, 1)
	assert.Equal(t, events.EventCardCreated, evs[0].Type)
}

func TestCreateCard_Validation(t *testing.T) {
	f := setupBoard(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateCardRequest
		want error
	}{
		{"empty title", CreateCardRequest{ColumnID: f.x, Title: "   "}, ErrEmptyTitle},
		{"long title", CreateCardRequest{ColumnID: f.x, Title: strings.Repeat("t", models.MaxTitleLength+1)}, ErrTitleTooLong},
		{"long description", CreateCardRequest{ColumnID: f.x, Title: "ok", Description: strings.Repeat("d", models.MaxDescriptionLength+1)}, ErrDescriptionTooLong},
		{"bad column id", CreateCardRequest{ColumnID: 0, Title: "ok"}, ErrInvalidColumnID},
		{"unknown column", CreateCardRequest{ColumnID: 9999, Title: "ok"}, ErrColumnNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateCard(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	// Multi-byte characters count once
	_, err := f.svc.CreateCard(ctx, CreateCardRequest{ColumnID: f.x, Title: "ok", Description: strings.Repeat("é", models.MaxDescriptionLength)})
	assert.NoError(t, err)
}

func TestUpdateCard(t *testing.T) {
	f := setupBoard(t)
	ctx := context.Background()

	title := "Renamed"
	updated, err := f.svc.UpdateCard(ctx, UpdateCardRequest{CardID: f.a, Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, 0, updated.Position)

	desc := "details"
	updated, err = f.svc.UpdateCard(ctx, UpdateCardRequest{CardID: f.a, Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title, "title is kept when only the description changes")
	assert.Equal(t, "details", updated.Description)

	_, err = f.svc.UpdateCard(ctx, UpdateCardRequest{CardID: f.a})
	assert.ErrorIs(t, err, ErrNothingToUpdate)

	_, err = f.svc.UpdateCard(ctx, UpdateCardRequest{CardID: 9999, Title: &title})
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestDeleteCard(t *testing.T) {
	f := setupBoard(t)
	ctx := context.Background()

	require.NoError(t, f.svc.DeleteCard(ctx, f.a))
	assert.Equal(t, []int{f.b, f.c}, f.order(t, f.x))

	_, err := f.svc.GetCard(ctx, f.a)
	assert.ErrorIs(t, err, ErrCardNotFound)

	assert.ErrorIs(t, f.svc.DeleteCard(ctx, f.a), ErrCardNotFound)

	evs := f.pub.Events()
	require.Len(t, evs, 1)
	assert.Equal(t, events.EventCardDeleted, evs[0].Type)
	assert.Equal(t, f.boardID, evs[0].BoardID)
}

func TestListCards(t *testing.T) {
	f := setupBoard(t)
	ctx := context.Background()

	cards, err := f.svc.ListCards(ctx, f.y)
	require.NoError(t, err)
	assert.Equal(t, []int{f.d, f.e}, cards.IDs())

	_, err = f.svc.ListCards(ctx, 9999)
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestNilPublisher(t *testing.T) {
	db := testutil.SetupTestDB(t)
	_, cols := testutil.CreateTestBoard(t, db, "Board", "X")
	svc := NewService(database.NewRepository(db), nil)

	card, err := svc.CreateCard(context.Background(), CreateCardRequest{ColumnID: cols[0], Title: "quiet"})
	require.NoError(t, err)
	require.NoError(t, svc.MoveCard(context.Background(), MoveCardRequest{CardID: card.ID, DestinationColumnID: cols[0]}))
}

func TestMoveCard_PublishFailureLoggedOnce(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	db := testutil.SetupTestDB(t)
	_, cols := testutil.CreateTestBoard(t, db, "Board", "X", "Y")
	ids := testutil.CreateTestCards(t, db, cols[0], "A")
	svc := NewService(database.NewRepository(db), brokenPublisher{})

	err := svc.MoveCard(context.Background(), MoveCardRequest{CardID: ids[0], DestinationColumnID: cols[1]})
	require.NoError(t, err, "a failed publish must not fail the move")

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "level=WARN"), out)
	assert.Contains(t, out, "broker down")
	assert.Contains(t, out, "card_id=")
}
