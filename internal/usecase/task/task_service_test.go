package task

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/warf-hq/warf-backend/internal/domain/entities"
	usecaseErrors "github.com/warf-hq/warf-backend/internal/usecase/errors"
)

type fakeTaskRepo struct {
	tasks map[uuid.UUID]*entities.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[uuid.UUID]*entities.Task)}
}

func materializationKey(t *entities.Task) string {
	minutesID := ""
	if t.MinutesID != nil {
		minutesID = t.MinutesID.String()
	}
	return t.MeetingID.String() + "/" + minutesID + "/" + t.Title
}

func (f *fakeTaskRepo) CreateIfAbsent(_ context.Context, task *entities.Task) (bool, error) {
	key := materializationKey(task)
	for _, existing := range f.tasks {
		if materializationKey(existing) == key {
			return false, nil
		}
	}
	f.tasks[task.ID] = task
	return true, nil
}

func (f *fakeTaskRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (f *fakeTaskRepo) ListByMeeting(_ context.Context, meetingID uuid.UUID) ([]*entities.Task, error) {
	var out []*entities.Task
	for _, t := range f.tasks {
		if t.MeetingID == meetingID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) ListAssignedTo(_ context.Context, userID uuid.UUID) ([]*entities.Task, error) {
	var out []*entities.Task
	for _, t := range f.tasks {
		if t.AssignedToID != nil && *t.AssignedToID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) AddSubmission(_ context.Context, submission *entities.TaskSubmission) error {
	t, ok := f.tasks[submission.TaskID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.SolutionText = submission.Note
	t.SolutionFileKey = submission.FileKey
	t.SubmittedAt = &submission.SubmittedAt
	t.SubmittedByID = &submission.SubmittedByID
	t.Status = entities.TaskStatusDone
	return nil
}

type fakeMinutesRepo struct {
	byMeeting map[uuid.UUID]*entities.Minutes
}

func (f *fakeMinutesRepo) GetOrCreateForMeeting(_ context.Context, meetingID uuid.UUID, createdBy *uuid.UUID) (*entities.Minutes, error) {
	if m, ok := f.byMeeting[meetingID]; ok {
		return m, nil
	}
	m := entities.NewMinutes(meetingID, createdBy)
	f.byMeeting[meetingID] = m
	return m, nil
}

func (f *fakeMinutesRepo) FindByMeetingID(_ context.Context, meetingID uuid.UUID) (*entities.Minutes, error) {
	m, ok := f.byMeeting[meetingID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (f *fakeMinutesRepo) List(_ context.Context, _ bool) ([]*entities.Minutes, error) {
	return nil, nil
}

func (f *fakeMinutesRepo) SaveDiscussionPoints(_ context.Context, _ uuid.UUID, _ string) error {
	return nil
}

func (f *fakeMinutesRepo) SaveAIResult(_ context.Context, _ uuid.UUID, _, _ string, _ time.Time) error {
	return nil
}

func (f *fakeMinutesRepo) SendToReview(_ context.Context, _ uuid.UUID) error { return nil }

func (f *fakeMinutesRepo) Approve(_ context.Context, _, _ uuid.UUID, _ time.Time) (bool, error) {
	return false, nil
}

func (f *fakeMinutesRepo) SetLocked(_ context.Context, _ uuid.UUID, _ bool) error { return nil }

type fakeMeetingRepo struct {
	meetings map[uuid.UUID]*entities.Meeting
}

func (f *fakeMeetingRepo) CreateWithAttendees(_ context.Context, meeting *entities.Meeting, _ []*entities.Attendee) error {
	f.meetings[meeting.ID] = meeting
	return nil
}

func (f *fakeMeetingRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Meeting, error) {
	m, ok := f.meetings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (f *fakeMeetingRepo) ListAll(_ context.Context) ([]*entities.Meeting, error) { return nil, nil }

func (f *fakeMeetingRepo) ListForUser(_ context.Context, _ uuid.UUID) ([]*entities.Meeting, error) {
	return nil, nil
}

func (f *fakeMeetingRepo) Update(_ context.Context, _ *entities.Meeting) error { return nil }

func (f *fakeMeetingRepo) SaveTranscript(_ context.Context, _ uuid.UUID, _ string) error { return nil }

type fakeUserRepo struct {
	users []*entities.User
}

func (f *fakeUserRepo) CreateWithProfile(_ context.Context, user *entities.User, _ *entities.Profile) error {
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) findBy(match func(*entities.User) bool) (*entities.User, error) {
	for _, u := range f.users {
		if match(u) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entities.User, error) {
	return f.findBy(func(u *entities.User) bool {
		return strings.EqualFold(u.Username, username)
	})
}

func (f *fakeUserRepo) FindByFirstName(_ context.Context, firstName string) (*entities.User, error) {
	return f.findBy(func(u *entities.User) bool {
		return strings.EqualFold(u.FirstName, firstName)
	})
}

func (f *fakeUserRepo) FindByLastName(_ context.Context, lastName string) (*entities.User, error) {
	return f.findBy(func(u *entities.User) bool {
		return strings.EqualFold(u.LastName, lastName)
	})
}

func (f *fakeUserRepo) Update(_ context.Context, _ *entities.User) error { return nil }

func (f *fakeUserRepo) SetFaceImageKey(_ context.Context, _ uuid.UUID, _ string) error {
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, _, _ int) ([]*entities.User, error) {
	return f.users, nil
}

type taskTestEnv struct {
	service *taskService
	tasks   *fakeTaskRepo
	minutes *fakeMinutesRepo
	users   *fakeUserRepo
	admin   *entities.User
	meeting *entities.Meeting
}

func newTaskTestEnv() *taskTestEnv {
	admin := entities.NewUser("admin", "admin@warf.local")
	admin.Role = entities.RoleAdmin

	meeting := entities.NewMeeting("Planning", admin.ID, time.Now())

	env := &taskTestEnv{
		tasks:   newFakeTaskRepo(),
		minutes: &fakeMinutesRepo{byMeeting: make(map[uuid.UUID]*entities.Minutes)},
		users:   &fakeUserRepo{},
		admin:   admin,
		meeting: meeting,
	}
	env.service = &taskService{
		taskRepo:    env.tasks,
		minutesRepo: env.minutes,
		meetingRepo: &fakeMeetingRepo{meetings: map[uuid.UUID]*entities.Meeting{meeting.ID: meeting}},
		userRepo:    env.users,
		logger:      zap.NewNop(),
	}
	return env
}

// approvedMinutes stores an approved record carrying the given decision text.
func (env *taskTestEnv) approvedMinutes(decisions string) *entities.Minutes {
	m := entities.NewMinutes(env.meeting.ID, &env.admin.ID)
	m.AIDecisions = decisions
	m.Approve(env.admin.ID, time.Now())
	env.minutes.byMeeting[env.meeting.ID] = m
	return m
}

func TestMaterialize_CreatesTasksFromActionItems(t *testing.T) {
	env := newTaskTestEnv()
	alice := entities.NewUser("alice", "alice@warf.local")
	alice.FirstName = "Alice"
	alice.LastName = "Nguyen"
	env.users.users = append(env.users.users, alice)

	record := env.approvedMinutes(`{"action_items": [
		{"title": "Write rollout plan", "assignee": "alice", "priority": "high", "due_date": "2026-04-01"},
		{"title": "Update the wiki"}
	]}`)

	result, err := env.service.Materialize(context.Background(), env.admin, env.meeting.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Created != 2 || result.Skipped != 0 || result.Total != 2 {
		t.Fatalf("result = %+v", result)
	}

	tasks, _ := env.tasks.ListByMeeting(context.Background(), env.meeting.ID)
	var plan *entities.Task
	for _, task := range tasks {
		if task.Title == "Write rollout plan" {
			plan = task
		}
	}
	if plan == nil {
		t.Fatal("materialized task not found")
	}
	if plan.AssignedToID == nil || *plan.AssignedToID != alice.ID {
		t.Fatal("assignee must resolve to alice by username")
	}
	if plan.Priority != entities.TaskPriorityHigh {
		t.Fatalf("priority = %s, want high", plan.Priority)
	}
	if plan.DueDate == nil || plan.DueDate.Format("2006-01-02") != "2026-04-01" {
		t.Fatalf("due date = %v", plan.DueDate)
	}
	if plan.MinutesID == nil || *plan.MinutesID != record.ID {
		t.Fatal("task must reference the minutes it came from")
	}
}

func TestMaterialize_Idempotent(t *testing.T) {
	env := newTaskTestEnv()
	env.approvedMinutes(`{"action_items": ["Book the room", "Send invites"]}`)

	first, err := env.service.Materialize(context.Background(), env.admin, env.meeting.ID)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Created != 2 {
		t.Fatalf("first run = %+v", first)
	}

	second, err := env.service.Materialize(context.Background(), env.admin, env.meeting.ID)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Created != 0 || second.Skipped != 2 {
		t.Fatalf("second run = %+v, want everything skipped", second)
	}
	if len(env.tasks.tasks) != 2 {
		t.Fatalf("task count = %d, want 2", len(env.tasks.tasks))
	}
}

func TestMaterialize_UnknownAssigneeStaysUnassigned(t *testing.T) {
	env := newTaskTestEnv()
	env.approvedMinutes(`{"action_items": [{"title": "Order hardware", "assignee": "nobody"}]}`)

	result, err := env.service.Materialize(context.Background(), env.admin, env.meeting.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Created != 1 {
		t.Fatalf("result = %+v", result)
	}
	for _, task := range env.tasks.tasks {
		if task.AssignedToID != nil {
			t.Fatal("unknown assignee must leave the task unassigned")
		}
	}
}

func TestMaterialize_AssigneeByFirstName(t *testing.T) {
	env := newTaskTestEnv()
	bob := entities.NewUser("btran", "bob@warf.local")
	bob.FirstName = "Bob"
	env.users.users = append(env.users.users, bob)
	env.approvedMinutes(`{"action_items": [{"title": "Check budget", "assignee": "bob"}]}`)

	if _, err := env.service.Materialize(context.Background(), env.admin, env.meeting.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, task := range env.tasks.tasks {
		if task.AssignedToID == nil || *task.AssignedToID != bob.ID {
			t.Fatal("assignee must resolve by first name when no username matches")
		}
	}
}

func TestMaterialize_UnrecognizedPriorityFallsBack(t *testing.T) {
	env := newTaskTestEnv()
	env.approvedMinutes(`{"action_items": [{"title": "Escalate", "priority": "urgent"}]}`)

	if _, err := env.service.Materialize(context.Background(), env.admin, env.meeting.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, task := range env.tasks.tasks {
		if task.Priority != entities.TaskPriorityMedium {
			t.Fatalf("priority = %s, want medium fallback", task.Priority)
		}
	}
}

func TestMaterialize_LegacyPythonPayload(t *testing.T) {
	env := newTaskTestEnv()
	env.approvedMinutes(`{'action_items': [{'title': 'Migrate records', 'priority': 'low'}], 'done': False}`)

	result, err := env.service.Materialize(context.Background(), env.admin, env.meeting.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Created != 1 {
		t.Fatalf("result = %+v", result)
	}
}

func TestMaterialize_GarbagePayloadCreatesNothing(t *testing.T) {
	env := newTaskTestEnv()
	env.approvedMinutes("not a payload at all")

	result, err := env.service.Materialize(context.Background(), env.admin, env.meeting.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Created != 0 || result.Total != 0 {
		t.Fatalf("result = %+v, want nothing created", result)
	}
}

func TestMaterialize_RequiresAdmin(t *testing.T) {
	env := newTaskTestEnv()
	env.approvedMinutes(`{"action_items": ["X"]}`)

	_, err := env.service.Materialize(context.Background(), entities.NewUser("alice", "alice@warf.local"), env.meeting.ID)
	if !errors.Is(err, usecaseErrors.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestMaterialize_RequiresApprovedMinutes(t *testing.T) {
	env := newTaskTestEnv()
	draft := entities.NewMinutes(env.meeting.ID, &env.admin.ID)
	draft.AIDecisions = `{"action_items": ["X"]}`
	env.minutes.byMeeting[env.meeting.ID] = draft

	_, err := env.service.Materialize(context.Background(), env.admin, env.meeting.ID)
	if !errors.Is(err, usecaseErrors.ErrMinutesNotApproved) {
		t.Fatalf("err = %v, want ErrMinutesNotApproved", err)
	}
}

func TestMaterialize_MinutesMissing(t *testing.T) {
	env := newTaskTestEnv()
	_, err := env.service.Materialize(context.Background(), env.admin, env.meeting.ID)
	if !errors.Is(err, usecaseErrors.ErrMinutesNotFound) {
		t.Fatalf("err = %v, want ErrMinutesNotFound", err)
	}
}

func TestListByMeeting_EmployeeSeesOnlyOwnTasks(t *testing.T) {
	env := newTaskTestEnv()
	alice := entities.NewUser("alice", "alice@warf.local")
	env.users.users = append(env.users.users, alice)

	mine := entities.NewTask(env.meeting.ID, "Mine")
	mine.AssignedToID = &alice.ID
	other := entities.NewTask(env.meeting.ID, "Someone else's")
	env.tasks.tasks[mine.ID] = mine
	env.tasks.tasks[other.ID] = other

	tasks, err := env.service.ListByMeeting(context.Background(), alice, env.meeting.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != mine.ID {
		t.Fatalf("tasks = %v, want only the assigned one", tasks)
	}
}

func TestSubmitSolution_OnlyAssignee(t *testing.T) {
	env := newTaskTestEnv()
	alice := entities.NewUser("alice", "alice@warf.local")
	task := entities.NewTask(env.meeting.ID, "Write report")
	task.AssignedToID = &alice.ID
	env.tasks.tasks[task.ID] = task

	if _, err := env.service.SubmitSolution(context.Background(), env.admin, SubmitSolutionInput{
		TaskID: task.ID,
		Note:   "done",
	}); !errors.Is(err, usecaseErrors.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden for non-assignee", err)
	}

	updated, err := env.service.SubmitSolution(context.Background(), alice, SubmitSolutionInput{
		TaskID: task.ID,
		Note:   "report attached",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != entities.TaskStatusDone || updated.SolutionText != "report attached" {
		t.Fatalf("task = %+v, want done with solution", updated)
	}
}
