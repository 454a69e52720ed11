package meeting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/warf-hq/warf-backend/internal/domain/entities"
	usecaseErrors "github.com/warf-hq/warf-backend/internal/usecase/errors"
)

type fakeMeetingRepo struct {
	meetings    map[uuid.UUID]*entities.Meeting
	transcripts map[uuid.UUID]string
}

func newFakeMeetingRepo() *fakeMeetingRepo {
	return &fakeMeetingRepo{
		meetings:    make(map[uuid.UUID]*entities.Meeting),
		transcripts: make(map[uuid.UUID]string),
	}
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

func (f *fakeMeetingRepo) ListAll(_ context.Context) ([]*entities.Meeting, error) {
	out := make([]*entities.Meeting, 0, len(f.meetings))
	for _, m := range f.meetings {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMeetingRepo) ListForUser(_ context.Context, _ uuid.UUID) ([]*entities.Meeting, error) {
	return nil, nil
}

func (f *fakeMeetingRepo) Update(_ context.Context, meeting *entities.Meeting) error {
	f.meetings[meeting.ID] = meeting
	return nil
}

func (f *fakeMeetingRepo) SaveTranscript(_ context.Context, meetingID uuid.UUID, text string) error {
	f.transcripts[meetingID] = text
	return nil
}

type fakeAttendeeRepo struct {
	attendees map[string]*entities.Attendee
	verified  map[uuid.UUID]bool
}

func newFakeAttendeeRepo() *fakeAttendeeRepo {
	return &fakeAttendeeRepo{
		attendees: make(map[string]*entities.Attendee),
		verified:  make(map[uuid.UUID]bool),
	}
}

func attendeeKey(meetingID, userID uuid.UUID) string {
	return meetingID.String() + "/" + userID.String()
}

func (f *fakeAttendeeRepo) invite(meetingID, userID uuid.UUID) {
	a := entities.NewAttendee(meetingID, userID, entities.AttendeeRoleMember)
	f.attendees[attendeeKey(meetingID, userID)] = a
}

func (f *fakeAttendeeRepo) FindByMeetingAndUser(_ context.Context, meetingID, userID uuid.UUID) (*entities.Attendee, error) {
	a, ok := f.attendees[attendeeKey(meetingID, userID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (f *fakeAttendeeRepo) Exists(_ context.Context, meetingID, userID uuid.UUID) (bool, error) {
	_, ok := f.attendees[attendeeKey(meetingID, userID)]
	return ok, nil
}

func (f *fakeAttendeeRepo) GetOrCreate(_ context.Context, meetingID, userID uuid.UUID, role entities.AttendeeRole) (*entities.Attendee, error) {
	key := attendeeKey(meetingID, userID)
	if a, ok := f.attendees[key]; ok {
		return a, nil
	}
	a := entities.NewAttendee(meetingID, userID, role)
	f.attendees[key] = a
	return a, nil
}

func (f *fakeAttendeeRepo) MarkFaceVerified(_ context.Context, attendeeID uuid.UUID, at time.Time, confidence *float64) error {
	f.verified[attendeeID] = true
	for _, a := range f.attendees {
		if a.ID == attendeeID {
			a.MarkFaceVerified(at, confidence)
		}
	}
	return nil
}

func (f *fakeAttendeeRepo) FindByMeetingID(_ context.Context, meetingID uuid.UUID) ([]*entities.Attendee, error) {
	var out []*entities.Attendee
	for _, a := range f.attendees {
		if a.MeetingID == meetingID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entities.User
}

func (f *fakeUserRepo) CreateWithProfile(_ context.Context, user *entities.User, _ *entities.Profile) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, _ string) (*entities.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByFirstName(_ context.Context, _ string) (*entities.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByLastName(_ context.Context, _ string) (*entities.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, user *entities.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) SetFaceImageKey(_ context.Context, _ uuid.UUID, _ string) error {
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, _, _ int) ([]*entities.User, error) {
	return nil, nil
}

type fakeMatcher struct {
	result MatchResult
	err    error
	calls  int
}

func (f *fakeMatcher) Verify(_ context.Context, _, _ []byte) (MatchResult, error) {
	f.calls++
	return f.result, f.err
}

type fakeResolver struct {
	image []byte
	err   error
}

func (f *fakeResolver) ReferenceImage(_ context.Context, _ uuid.UUID) ([]byte, error) {
	return f.image, f.err
}

type fakeFlagStore struct {
	flags   map[string]bool
	readErr error
}

func newFakeFlagStore() *fakeFlagStore {
	return &fakeFlagStore{flags: make(map[string]bool)}
}

func (f *fakeFlagStore) SetFaceVerified(_ context.Context, sessionID, meetingID uuid.UUID) error {
	f.flags[sessionID.String()+"/"+meetingID.String()] = true
	return nil
}

func (f *fakeFlagStore) HasFaceVerified(_ context.Context, sessionID, meetingID uuid.UUID) (bool, error) {
	if f.readErr != nil {
		return false, f.readErr
	}
	return f.flags[sessionID.String()+"/"+meetingID.String()], nil
}

type testEnv struct {
	service   *meetingService
	meetings  *fakeMeetingRepo
	attendees *fakeAttendeeRepo
	matcher   *fakeMatcher
	resolver  *fakeResolver
	flags     *fakeFlagStore
}

func newTestEnv() *testEnv {
	env := &testEnv{
		meetings:  newFakeMeetingRepo(),
		attendees: newFakeAttendeeRepo(),
		matcher:   &fakeMatcher{result: MatchResult{Matched: true, Confidence: 0.97}},
		resolver:  &fakeResolver{image: []byte("reference")},
		flags:     newFakeFlagStore(),
	}
	env.service = &meetingService{
		meetingRepo:       env.meetings,
		attendeeRepo:      env.attendees,
		userRepo:          &fakeUserRepo{users: make(map[uuid.UUID]*entities.User)},
		matcher:           env.matcher,
		references:        env.resolver,
		flags:             env.flags,
		defaultRoomDomain: "meet.jit.si",
		logger:            zap.NewNop(),
		now:               time.Now,
	}
	return env
}

// openMeeting builds a meeting whose window contains the fixed test clock.
func (env *testEnv) openMeeting(mode entities.MeetingMode, requireFace bool) *entities.Meeting {
	starts := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	ends := starts.Add(time.Hour)
	m := entities.NewMeeting("Planning", uuid.New(), starts)
	m.EndsAt = &ends
	m.Mode = mode
	m.RequireFaceVerification = requireFace
	env.meetings.meetings[m.ID] = m
	env.service.now = func() time.Time {
		return time.Date(2026, 3, 10, 10, 15, 0, 0, time.UTC)
	}
	return m
}

func employee() *entities.User {
	u := entities.NewUser("alice", "alice@warf.local")
	return u
}

func TestCanJoin_NotInvitedWinsOverEverything(t *testing.T) {
	env := newTestEnv()
	m := env.openMeeting(entities.MeetingModeOnline, true)
	user := employee()
	// User is verified for the session but was never invited.
	session := uuid.New()
	env.flags.SetFaceVerified(context.Background(), session, m.ID)

	decision, err := env.service.CanJoin(context.Background(), user, session, m.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Allowed {
		t.Fatal("uninvited user must be denied")
	}
	if decision.Reason != DenyReasonNotInvited {
		t.Fatalf("reason = %s, want not_invited", decision.Reason)
	}
}

func TestCanJoin_WrongModeBeforeTime(t *testing.T) {
	env := newTestEnv()
	m := env.openMeeting(entities.MeetingModeUpload, false)
	user := employee()
	env.attendees.invite(m.ID, user.ID)
	// The window is closed too; the mode gate must still report first.
	env.service.now = func() time.Time {
		return time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	}

	decision, err := env.service.CanJoin(context.Background(), user, uuid.New(), m.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Allowed || decision.Reason != DenyReasonWrongMode {
		t.Fatalf("decision = %+v, want wrong_mode denial", decision)
	}
}

func TestCanJoin_ClosedEvenWhenVerified(t *testing.T) {
	env := newTestEnv()
	m := env.openMeeting(entities.MeetingModeOnline, true)
	user := employee()
	env.attendees.invite(m.ID, user.ID)
	session := uuid.New()
	env.flags.SetFaceVerified(context.Background(), session, m.ID)
	env.service.now = func() time.Time {
		return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	}

	decision, err := env.service.CanJoin(context.Background(), user, session, m.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Allowed || decision.Reason != DenyReasonClosed {
		t.Fatalf("decision = %+v, want closed denial", decision)
	}
}

func TestCanJoin_AllowedWithFaceFlag(t *testing.T) {
	env := newTestEnv()
	m := env.openMeeting(entities.MeetingModeOnline, true)
	user := employee()
	env.attendees.invite(m.ID, user.ID)
	session := uuid.New()
	env.flags.SetFaceVerified(context.Background(), session, m.ID)

	decision, err := env.service.CanJoin(context.Background(), user, session, m.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decision.Allowed {
		t.Fatalf("decision = %+v, want allowed", decision)
	}
	if !decision.FaceVerified || !decision.RequireFaceVerification {
		t.Fatalf("decision = %+v, want face flags set", decision)
	}
	if decision.RoomName != m.RoomName {
		t.Fatalf("room name = %q, want %q", decision.RoomName, m.RoomName)
	}
}

func TestCanJoin_FlagStoreOutageDegradesToUnverified(t *testing.T) {
	env := newTestEnv()
	m := env.openMeeting(entities.MeetingModeOnline, true)
	user := employee()
	env.attendees.invite(m.ID, user.ID)
	env.flags.readErr = errors.New("redis down")

	decision, err := env.service.CanJoin(context.Background(), user, uuid.New(), m.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decision.Allowed || decision.FaceVerified {
		t.Fatalf("decision = %+v, want allowed but unverified", decision)
	}
}

func TestCanJoin_AdminImplicitlyInvited(t *testing.T) {
	env := newTestEnv()
	m := env.openMeeting(entities.MeetingModeOnline, false)
	// Admin is neither the organizer nor on the roster.
	admin := employee()
	admin.Role = entities.RoleAdmin

	decision, err := env.service.CanJoin(context.Background(), admin, uuid.New(), m.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decision.Allowed {
		t.Fatalf("decision = %+v, want allowed for admin", decision)
	}
}

func TestVerifyFace_AdminWithoutInvitation(t *testing.T) {
	env := newTestEnv()
	m := env.openMeeting(entities.MeetingModeOnline, true)
	admin := employee()
	admin.Role = entities.RoleAdmin

	result, err := env.service.VerifyFace(context.Background(), admin, VerifyFaceInput{
		MeetingID:  m.ID,
		SessionID:  uuid.New(),
		ProbeImage: []byte("probe"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Verified {
		t.Fatalf("result = %+v, want verified", result)
	}
}

func TestCanJoin_OrganizerImplicitlyInvited(t *testing.T) {
	env := newTestEnv()
	m := env.openMeeting(entities.MeetingModeOnline, false)
	organizer := employee()
	m.OrganizerID = organizer.ID

	decision, err := env.service.CanJoin(context.Background(), organizer, uuid.New(), m.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decision.Allowed {
		t.Fatalf("decision = %+v, want allowed", decision)
	}
}

func TestCanJoin_MeetingNotFound(t *testing.T) {
	env := newTestEnv()
	_, err := env.service.CanJoin(context.Background(), employee(), uuid.New(), uuid.New())
	if !errors.Is(err, usecaseErrors.ErrMeetingNotFound) {
		t.Fatalf("err = %v, want ErrMeetingNotFound", err)
	}
}

func TestVerifyFace_SuccessMarksAttendeeAndSession(t *testing.T) {
	env := newTestEnv()
	m := env.openMeeting(entities.MeetingModeOnline, true)
	user := employee()
	env.attendees.invite(m.ID, user.ID)
	session := uuid.New()

	result, err := env.service.VerifyFace(context.Background(), user, VerifyFaceInput{
		MeetingID:  m.ID,
		SessionID:  session,
		ProbeImage: []byte("probe"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Verified {
		t.Fatalf("result = %+v, want verified", result)
	}
	if result.Confidence == nil || *result.Confidence != 0.97 {
		t.Fatalf("confidence = %v, want 0.97", result.Confidence)
	}

	attendee, err := env.attendees.FindByMeetingAndUser(context.Background(), m.ID, user.ID)
	if err != nil {
		t.Fatalf("attendee lookup: %v", err)
	}
	if !attendee.FaceVerified {
		t.Fatal("attendee record must be marked verified")
	}
	flagged, _ := env.flags.HasFaceVerified(context.Background(), session, m.ID)
	if !flagged {
		t.Fatal("session flag must be set after verification")
	}
}

func TestVerifyFace_CreatesAttendeeForOrganizer(t *testing.T) {
	env := newTestEnv()
	m := env.openMeeting(entities.MeetingModeOnline, true)
	organizer := employee()
	m.OrganizerID = organizer.ID

	if _, err := env.service.VerifyFace(context.Background(), organizer, VerifyFaceInput{
		MeetingID:  m.ID,
		SessionID:  uuid.New(),
		ProbeImage: []byte("probe"),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists, _ := env.attendees.Exists(context.Background(), m.ID, organizer.ID); !exists {
		t.Fatal("verification must create the missing attendee record")
	}
}

func TestVerifyFace_NotRequiredShortCircuits(t *testing.T) {
	env := newTestEnv()
	m := env.openMeeting(entities.MeetingModeOnline, false)
	user := employee()
	env.attendees.invite(m.ID, user.ID)

	result, err := env.service.VerifyFace(context.Background(), user, VerifyFaceInput{
		MeetingID: m.ID,
		SessionID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Verified {
		t.Fatalf("result = %+v, want verified", result)
	}
	if env.matcher.calls != 0 {
		t.Fatal("matcher must not be called when verification is not required")
	}
}

func TestVerifyFace_ClosedMeetingRefused(t *testing.T) {
	env := newTestEnv()
	m := env.openMeeting(entities.MeetingModeOnline, true)
	user := employee()
	env.attendees.invite(m.ID, user.ID)
	env.service.now = func() time.Time {
		return time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
	}

	_, err := env.service.VerifyFace(context.Background(), user, VerifyFaceInput{
		MeetingID:  m.ID,
		SessionID:  uuid.New(),
		ProbeImage: []byte("probe"),
	})
	if !errors.Is(err, usecaseErrors.ErrMeetingClosed) {
		t.Fatalf("err = %v, want ErrMeetingClosed", err)
	}
	if env.matcher.calls != 0 {
		t.Fatal("matcher must not run outside the open window")
	}
}

func TestVerifyFace_NotInvited(t *testing.T) {
	env := newTestEnv()
	m := env.openMeeting(entities.MeetingModeOnline, true)

	_, err := env.service.VerifyFace(context.Background(), employee(), VerifyFaceInput{
		MeetingID:  m.ID,
		SessionID:  uuid.New(),
		ProbeImage: []byte("probe"),
	})
	if !errors.Is(err, usecaseErrors.ErrNotInvited) {
		t.Fatalf("err = %v, want ErrNotInvited", err)
	}
}

func TestVerifyFace_NoReferenceImage(t *testing.T) {
	env := newTestEnv()
	m := env.openMeeting(entities.MeetingModeOnline, true)
	user := employee()
	env.attendees.invite(m.ID, user.ID)
	env.resolver.image = nil

	_, err := env.service.VerifyFace(context.Background(), user, VerifyFaceInput{
		MeetingID:  m.ID,
		SessionID:  uuid.New(),
		ProbeImage: []byte("probe"),
	})
	if !errors.Is(err, usecaseErrors.ErrNoReferenceImage) {
		t.Fatalf("err = %v, want ErrNoReferenceImage", err)
	}
}

func TestVerifyFace_MatcherOutageDeniesWithoutError(t *testing.T) {
	env := newTestEnv()
	m := env.openMeeting(entities.MeetingModeOnline, true)
	user := employee()
	env.attendees.invite(m.ID, user.ID)
	env.matcher.err = errors.New("connection refused")
	session := uuid.New()

	result, err := env.service.VerifyFace(context.Background(), user, VerifyFaceInput{
		MeetingID:  m.ID,
		SessionID:  session,
		ProbeImage: []byte("probe"),
	})
	if err != nil {
		t.Fatalf("matcher outage must not surface as an error, got %v", err)
	}
	if result.Verified {
		t.Fatal("matcher outage must deny the attempt")
	}
	if flagged, _ := env.flags.HasFaceVerified(context.Background(), session, m.ID); flagged {
		t.Fatal("session flag must not be set on outage")
	}
}

func TestVerifyFace_MismatchDenied(t *testing.T) {
	env := newTestEnv()
	m := env.openMeeting(entities.MeetingModeOnline, true)
	user := employee()
	env.attendees.invite(m.ID, user.ID)
	env.matcher.result = MatchResult{Matched: false, Confidence: 0.21}

	result, err := env.service.VerifyFace(context.Background(), user, VerifyFaceInput{
		MeetingID:  m.ID,
		SessionID:  uuid.New(),
		ProbeImage: []byte("probe"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Verified {
		t.Fatal("mismatch must deny the attempt")
	}
	if result.Confidence == nil || *result.Confidence != 0.21 {
		t.Fatalf("confidence = %v, want 0.21", result.Confidence)
	}
}

func TestCreateMeeting_RequiresAdmin(t *testing.T) {
	env := newTestEnv()
	_, err := env.service.CreateMeeting(context.Background(), employee(), CreateMeetingInput{
		Title:    "Retro",
		StartsAt: time.Now(),
	})
	if !errors.Is(err, usecaseErrors.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestCreateMeeting_UploadModeClearsRoomDomain(t *testing.T) {
	env := newTestEnv()
	admin := employee()
	admin.Role = entities.RoleAdmin

	m, err := env.service.CreateMeeting(context.Background(), admin, CreateMeetingInput{
		Title:    "Async review",
		StartsAt: time.Now(),
		Mode:     entities.MeetingModeUpload,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.RoomDomain != "" {
		t.Fatalf("room domain = %q, want empty for upload mode", m.RoomDomain)
	}
	if m.RoomName == "" {
		t.Fatal("room name is assigned regardless of mode")
	}
}
