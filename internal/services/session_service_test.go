package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
	"github.com/dkwarude-cell/smartheal-sub001/internal/repository"
)

type stubRow struct {
	values []any
	err    error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i := range dest {
		switch target := dest[i].(type) {
		case *int64:
			*target = r.values[i].(int64)
		case *int:
			*target = r.values[i].(int)
		case *string:
			*target = r.values[i].(string)
		case **string:
			*target = r.values[i].(*string)
		case **int:
			*target = r.values[i].(*int)
		case *time.Time:
			*target = r.values[i].(time.Time)
		case **time.Time:
			*target = r.values[i].(*time.Time)
		default:
			return errors.New("unsupported scan target")
		}
	}
	return nil
}

type stubDBTX struct {
	queryRowFn func(ctx context.Context, query string, args ...any) stubRow
}

func (db *stubDBTX) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (db *stubDBTX) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (db *stubDBTX) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	return db.queryRowFn(ctx, query, args...)
}

var testTime = time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

// Values in therapy_sessions column order for the stub scanner.
func sessionRowValues(id, userID int64, status string, scheduledAt time.Time) []any {
	return []any{
		id,
		userID,
		"Knee recovery",
		"pain_relief",
		scheduledAt,
		30,
		"knee",
		5,
		models.ModeGuided,
		status,
		(*time.Time)(nil),
		(*int)(nil),
		(*int)(nil),
		(*int)(nil),
		testTime,
		testTime,
	}
}

type stubUserReader struct {
	user *models.User
}

func (r *stubUserReader) GetByID(_ context.Context, _ int64) (*models.User, error) {
	if r.user == nil {
		return nil, pgx.ErrNoRows
	}
	return r.user, nil
}

func newStubSessionService(db *stubDBTX) *SessionService {
	return &SessionService{
		sessionRepo: repository.NewSessionRepository(db),
		userRepo:    &stubUserReader{user: &models.User{ID: 4, Role: models.RoleAthlete}},
	}
}

func TestScheduleValidatesInput(t *testing.T) {
	service := newStubSessionService(&stubDBTX{
		queryRowFn: func(_ context.Context, _ string, _ ...any) stubRow {
			return stubRow{err: errors.New("must not reach the database")}
		},
	})
	future := time.Now().Add(2 * time.Hour)

	valid := ScheduleSessionInput{
		Name:           "Knee recovery",
		Type:           "pain_relief",
		ScheduledAt:    future,
		DurationMin:    30,
		BodyPart:       "knee",
		IntensityLevel: 5,
		Mode:           models.ModeGuided,
	}

	cases := []struct {
		name   string
		mutate func(*ScheduleSessionInput)
	}{
		{"blank name", func(in *ScheduleSessionInput) { in.Name = "  " }},
		{"blank type", func(in *ScheduleSessionInput) { in.Type = "" }},
		{"zero duration", func(in *ScheduleSessionInput) { in.DurationMin = 0 }},
		{"intensity too low", func(in *ScheduleSessionInput) { in.IntensityLevel = 0 }},
		{"intensity too high", func(in *ScheduleSessionInput) { in.IntensityLevel = 11 }},
		{"unknown mode", func(in *ScheduleSessionInput) { in.Mode = "manual" }},
		{"in the past", func(in *ScheduleSessionInput) { in.ScheduledAt = time.Now().Add(-time.Hour) }},
	}

	for _, tc := range cases {
		input := valid
		tc.mutate(&input)
		if _, err := service.Schedule(context.Background(), 4, input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestScheduleTrimsAndCreates(t *testing.T) {
	var gotArgs []any
	scheduledAt := time.Now().Add(2 * time.Hour)
	service := newStubSessionService(&stubDBTX{
		queryRowFn: func(_ context.Context, query string, args ...any) stubRow {
			if !strings.Contains(query, "INSERT INTO therapy_sessions") {
				return stubRow{err: pgx.ErrNoRows}
			}
			gotArgs = args
			return stubRow{values: sessionRowValues(1, 4, models.SessionScheduled, scheduledAt.UTC())}
		},
	})

	session, err := service.Schedule(context.Background(), 4, ScheduleSessionInput{
		Name:           "  Knee recovery  ",
		Type:           " pain_relief ",
		ScheduledAt:    scheduledAt,
		DurationMin:    30,
		BodyPart:       " knee ",
		IntensityLevel: 5,
		Mode:           models.ModeGuided,
	})
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if session.ID != 1 || session.Status != models.SessionScheduled {
		t.Fatalf("unexpected session: %+v", session)
	}
	if gotArgs[1] != "Knee recovery" || gotArgs[2] != "pain_relief" || gotArgs[5] != "knee" {
		t.Fatalf("expected trimmed insert args, got %v", gotArgs)
	}
}

func TestGetRejectsForeignSession(t *testing.T) {
	service := newStubSessionService(&stubDBTX{
		queryRowFn: func(_ context.Context, _ string, _ ...any) stubRow {
			return stubRow{values: sessionRowValues(9, 77, models.SessionScheduled, testTime)}
		},
	})

	if _, err := service.Get(context.Background(), 4, 9); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUpdateStatusStartsScheduledSession(t *testing.T) {
	var casArgs []any
	service := newStubSessionService(&stubDBTX{
		queryRowFn: func(_ context.Context, query string, args ...any) stubRow {
			if strings.Contains(query, "UPDATE therapy_sessions") {
				casArgs = args
				return stubRow{values: sessionRowValues(9, 4, models.SessionInProgress, testTime)}
			}
			return stubRow{values: sessionRowValues(9, 4, models.SessionScheduled, testTime)}
		},
	})

	updated, err := service.UpdateStatus(context.Background(), 4, 9, "start")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != models.SessionInProgress {
		t.Fatalf("expected in_progress, got %q", updated.Status)
	}
	if casArgs[1] != models.SessionScheduled || casArgs[2] != models.SessionInProgress {
		t.Fatalf("compare-and-set called with %v", casArgs)
	}
}

func TestUpdateStatusLostRace(t *testing.T) {
	service := newStubSessionService(&stubDBTX{
		queryRowFn: func(_ context.Context, query string, _ ...any) stubRow {
			if strings.Contains(query, "UPDATE therapy_sessions") {
				return stubRow{err: pgx.ErrNoRows}
			}
			return stubRow{values: sessionRowValues(9, 4, models.SessionScheduled, testTime)}
		},
	})

	if _, err := service.UpdateStatus(context.Background(), 4, 9, "skip"); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("expected ErrInvalidStateTransition on lost race, got %v", err)
	}
}

func TestUpdateStatusRejectsUnknownAndIllegal(t *testing.T) {
	service := newStubSessionService(&stubDBTX{
		queryRowFn: func(_ context.Context, _ string, _ ...any) stubRow {
			return stubRow{values: sessionRowValues(9, 4, models.SessionCompleted, testTime)}
		},
	})

	if _, err := service.UpdateStatus(context.Background(), 4, 9, "finish"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := service.UpdateStatus(context.Background(), 4, 9, "start"); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("expected ErrInvalidStateTransition from completed, got %v", err)
	}
}

func TestNormalizeRequestedStatus(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"start", models.SessionInProgress},
		{" In_Progress ", models.SessionInProgress},
		{"in-progress", models.SessionInProgress},
		{"skip", models.SessionSkipped},
		{"SKIPPED", models.SessionSkipped},
		{"cancel", models.SessionCancelled},
		{"canceled", models.SessionCancelled},
		{"cancelled", models.SessionCancelled},
	}
	for _, tc := range cases {
		got, err := normalizeRequestedStatus(tc.in)
		if err != nil {
			t.Fatalf("normalizeRequestedStatus(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("normalizeRequestedStatus(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	for _, in := range []string{"", "completed", "scheduled", "done"} {
		if _, err := normalizeRequestedStatus(in); !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("normalizeRequestedStatus(%q): expected ErrInvalidStatus, got %v", in, err)
		}
	}
}

func TestValidateStatusTransition(t *testing.T) {
	allowed := []struct{ from, to string }{
		{models.SessionScheduled, models.SessionInProgress},
		{models.SessionScheduled, models.SessionSkipped},
		{models.SessionScheduled, models.SessionCancelled},
		{models.SessionInProgress, models.SessionCancelled},
	}
	for _, tc := range allowed {
		if err := validateStatusTransition(tc.from, tc.to); err != nil {
			t.Fatalf("transition %s -> %s: %v", tc.from, tc.to, err)
		}
	}

	denied := []struct{ from, to string }{
		{models.SessionInProgress, models.SessionInProgress},
		{models.SessionInProgress, models.SessionSkipped},
		{models.SessionCompleted, models.SessionCancelled},
		{models.SessionSkipped, models.SessionInProgress},
	}
	for _, tc := range denied {
		if err := validateStatusTransition(tc.from, tc.to); !errors.Is(err, ErrInvalidStateTransition) {
			t.Fatalf("transition %s -> %s: expected ErrInvalidStateTransition, got %v", tc.from, tc.to, err)
		}
	}
}

func TestCompleteValidatesBeforeTouchingStorage(t *testing.T) {
	service := newStubSessionService(&stubDBTX{
		queryRowFn: func(_ context.Context, _ string, _ ...any) stubRow {
			return stubRow{values: sessionRowValues(9, 77, models.SessionInProgress, testTime)}
		},
	})
	intp := func(v int) *int { return &v }

	if _, err := service.Complete(context.Background(), 4, 9, CompleteSessionInput{Effectiveness: intp(101)}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for effectiveness 101, got %v", err)
	}
	if _, err := service.Complete(context.Background(), 4, 9, CompleteSessionInput{PainBefore: intp(11)}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for pain 11, got %v", err)
	}
	if _, err := service.Complete(context.Background(), 4, 9, CompleteSessionInput{}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign session, got %v", err)
	}
}

func TestDerivedEffectiveness(t *testing.T) {
	intp := func(v int) *int { return &v }

	cases := []struct {
		name   string
		before *int
		after  *int
		want   *int
	}{
		{"both missing", nil, nil, nil},
		{"after missing", intp(7), nil, nil},
		{"pain dropped", intp(7), intp(3), intp(40)},
		{"no change", intp(5), intp(5), intp(0)},
		{"pain rose clamps to zero", intp(3), intp(8), intp(0)},
		{"full relief", intp(10), intp(0), intp(100)},
	}
	for _, tc := range cases {
		got := derivedEffectiveness(tc.before, tc.after)
		if (got == nil) != (tc.want == nil) {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
		if got != nil && *got != *tc.want {
			t.Fatalf("%s: got %d, want %d", tc.name, *got, *tc.want)
		}
	}
}
