package meeting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/warf-hq/warf-backend/internal/domain/entities"
	"github.com/warf-hq/warf-backend/internal/domain/repositories"
	usecaseErrors "github.com/warf-hq/warf-backend/internal/usecase/errors"
)

// meetingService handles meeting business logic
type meetingService struct {
	meetingRepo  repositories.MeetingRepository
	attendeeRepo repositories.AttendeeRepository
	userRepo     repositories.UserRepository

	matcher    FaceMatcher
	references ReferenceImageResolver
	flags      SessionFlagStore

	defaultRoomDomain string
	logger            *zap.Logger

	now func() time.Time
}

// NewService creates a new meeting service
func NewService(
	meetingRepo repositories.MeetingRepository,
	attendeeRepo repositories.AttendeeRepository,
	userRepo repositories.UserRepository,
	matcher FaceMatcher,
	references ReferenceImageResolver,
	flags SessionFlagStore,
	defaultRoomDomain string,
	logger *zap.Logger,
) Service {
	return &meetingService{
		meetingRepo:       meetingRepo,
		attendeeRepo:      attendeeRepo,
		userRepo:          userRepo,
		matcher:           matcher,
		references:        references,
		flags:             flags,
		defaultRoomDomain: defaultRoomDomain,
		logger:            logger,
		now:               time.Now,
	}
}

// CreateMeeting creates a meeting and its initial roster in one transaction.
// The organizer becomes a host attendee and every invited user a member.
func (s *meetingService) CreateMeeting(ctx context.Context, actor *entities.User, input CreateMeetingInput) (*entities.Meeting, error) {
	if !actor.IsAdmin() {
		return nil, usecaseErrors.ErrForbidden
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, usecaseErrors.ErrInvalidInput
	}
	if input.Mode != "" && !input.Mode.IsValid() {
		return nil, usecaseErrors.ErrInvalidInput
	}

	meeting := entities.NewMeeting(strings.TrimSpace(input.Title), actor.ID, input.StartsAt)
	meeting.EndsAt = input.EndsAt
	meeting.Location = input.Location
	meeting.Agenda = input.Agenda
	meeting.RoomDomain = s.defaultRoomDomain
	if input.Mode != "" {
		meeting.Mode = input.Mode
	}
	if input.JoinEarlyMinutes != nil && *input.JoinEarlyMinutes >= 0 {
		meeting.JoinEarlyMinutes = *input.JoinEarlyMinutes
	}
	if input.JoinLateMinutes != nil && *input.JoinLateMinutes >= 0 {
		meeting.JoinLateMinutes = *input.JoinLateMinutes
	}
	if input.RequireFace != nil {
		meeting.RequireFaceVerification = *input.RequireFace
	}

	// An upload-only meeting has no live room, so the domain is cleared.
	if meeting.Mode == entities.MeetingModeUpload {
		meeting.RoomDomain = ""
	}

	attendees := []*entities.Attendee{
		entities.NewAttendee(meeting.ID, actor.ID, entities.AttendeeRoleHost),
	}
	seen := map[uuid.UUID]bool{actor.ID: true}
	for _, userID := range input.InvitedUserIDs {
		if seen[userID] {
			continue
		}
		seen[userID] = true
		if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, usecaseErrors.ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to resolve invited user: %w", err)
		}
		attendees = append(attendees, entities.NewAttendee(meeting.ID, userID, entities.AttendeeRoleMember))
	}

	if err := s.meetingRepo.CreateWithAttendees(ctx, meeting, attendees); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}

	s.logger.Info("meeting created",
		zap.String("meeting_id", meeting.ID.String()),
		zap.String("room_name", meeting.RoomName),
		zap.String("mode", string(meeting.Mode)),
		zap.Int("invited", len(attendees)-1))

	return meeting, nil
}

// ListMeetings retrieves all meetings for admins, otherwise only meetings the
// actor organizes or is invited to
func (s *meetingService) ListMeetings(ctx context.Context, actor *entities.User) ([]*entities.Meeting, error) {
	if actor.IsAdmin() {
		return s.meetingRepo.ListAll(ctx)
	}
	return s.meetingRepo.ListForUser(ctx, actor.ID)
}

// GetMeeting retrieves a meeting the actor may see
func (s *meetingService) GetMeeting(ctx context.Context, actor *entities.User, meetingID uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.findMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && meeting.OrganizerID != actor.ID {
		invited, err := s.attendeeRepo.Exists(ctx, meetingID, actor.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check invitation: %w", err)
		}
		if !invited {
			return nil, usecaseErrors.ErrForbidden
		}
	}

	return meeting, nil
}

// CanJoin evaluates the join gates in order: invitation, mode, time. The face
// flag rides along as information and never flips the decision; the time gate
// stays authoritative even for verified users.
func (s *meetingService) CanJoin(ctx context.Context, actor *entities.User, sessionID, meetingID uuid.UUID) (*JoinDecision, error) {
	meeting, err := s.findMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	if invited, err := s.isInvited(ctx, meeting, actor); err != nil {
		return nil, err
	} else if !invited {
		return &JoinDecision{
			Allowed: false,
			Reason:  DenyReasonNotInvited,
			Message: "You are not invited to this meeting.",
		}, nil
	}

	if !meeting.Mode.AllowsOnline() {
		return &JoinDecision{
			Allowed: false,
			Reason:  DenyReasonWrongMode,
			Message: "This meeting does not have an online room.",
		}, nil
	}

	now := s.now()
	if !meeting.IsOpenNow(now) {
		return &JoinDecision{
			Allowed: false,
			Reason:  DenyReasonClosed,
			Message: meeting.OpenStatusMessage(now),
		}, nil
	}

	faceVerified := true
	if meeting.RequireFaceVerification {
		faceVerified, err = s.flags.HasFaceVerified(ctx, sessionID, meetingID)
		if err != nil {
			// Losing the flag store must not lock users out of a meeting
			// they are entitled to join; they just re-verify.
			s.logger.Warn("session flag lookup failed", zap.Error(err))
			faceVerified = false
		}
	}

	return &JoinDecision{
		Allowed:                 true,
		Message:                 meeting.OpenStatusMessage(now),
		RoomName:                meeting.RoomName,
		RoomDomain:              meeting.RoomDomain,
		RequireFaceVerification: meeting.RequireFaceVerification,
		FaceVerified:            faceVerified,
	}, nil
}

// VerifyFace runs a verification attempt. The invitation and time gates are
// re-checked here: a verification outside the open window is refused even if
// the face would match.
func (s *meetingService) VerifyFace(ctx context.Context, actor *entities.User, input VerifyFaceInput) (*VerifyFaceResult, error) {
	meeting, err := s.findMeeting(ctx, input.MeetingID)
	if err != nil {
		return nil, err
	}

	if invited, err := s.isInvited(ctx, meeting, actor); err != nil {
		return nil, err
	} else if !invited {
		return nil, usecaseErrors.ErrNotInvited
	}

	if !meeting.RequireFaceVerification {
		return &VerifyFaceResult{
			Verified: true,
			Message:  "Face verification is not required for this meeting.",
		}, nil
	}

	now := s.now()
	if !meeting.IsOpenNow(now) {
		return nil, fmt.Errorf("%w: %s", usecaseErrors.ErrMeetingClosed, meeting.OpenStatusMessage(now))
	}

	reference, err := s.references.ReferenceImage(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference image: %w", err)
	}
	if len(reference) == 0 {
		return nil, usecaseErrors.ErrNoReferenceImage
	}

	match, err := s.matcher.Verify(ctx, reference, input.ProbeImage)
	if err != nil {
		// A matcher outage denies this attempt; it never grants access
		// and never surfaces as a server error to the caller.
		s.logger.Error("face matcher call failed",
			zap.String("meeting_id", meeting.ID.String()),
			zap.String("user_id", actor.ID.String()),
			zap.Error(err))
		return &VerifyFaceResult{
			Verified: false,
			Message:  "Face verification is temporarily unavailable. Please try again.",
		}, nil
	}

	if !match.Matched {
		confidence := match.Confidence
		return &VerifyFaceResult{
			Verified:   false,
			Confidence: &confidence,
			Message:    "Face did not match the registered photo.",
		}, nil
	}

	attendee, err := s.attendeeRepo.GetOrCreate(ctx, meeting.ID, actor.ID, entities.AttendeeRoleMember)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure attendee: %w", err)
	}
	confidence := match.Confidence
	if err := s.attendeeRepo.MarkFaceVerified(ctx, attendee.ID, now, &confidence); err != nil {
		return nil, fmt.Errorf("failed to record verification: %w", err)
	}
	if err := s.flags.SetFaceVerified(ctx, input.SessionID, meeting.ID); err != nil {
		return nil, fmt.Errorf("failed to set session flag: %w", err)
	}

	s.logger.Info("face verified",
		zap.String("meeting_id", meeting.ID.String()),
		zap.String("user_id", actor.ID.String()),
		zap.Float64("confidence", match.Confidence))

	return &VerifyFaceResult{
		Verified:   true,
		Confidence: &confidence,
		Message:    "Face verified.",
	}, nil
}

// UploadTranscript stores transcript text for a meeting whose mode allows it
func (s *meetingService) UploadTranscript(ctx context.Context, actor *entities.User, meetingID uuid.UUID, text string) error {
	meeting, err := s.findMeeting(ctx, meetingID)
	if err != nil {
		return err
	}

	if !actor.IsAdmin() {
		if invited, err := s.isInvited(ctx, meeting, actor); err != nil {
			return err
		} else if !invited {
			return usecaseErrors.ErrNotInvited
		}
	}

	if !meeting.Mode.AllowsUpload() {
		return usecaseErrors.ErrWrongMode
	}
	if strings.TrimSpace(text) == "" {
		return usecaseErrors.ErrInvalidInput
	}

	if err := s.meetingRepo.SaveTranscript(ctx, meetingID, text); err != nil {
		return fmt.Errorf("failed to save transcript: %w", err)
	}

	s.logger.Info("transcript uploaded",
		zap.String("meeting_id", meetingID.String()),
		zap.Int("length", len(text)))
	return nil
}

// GetAttendees retrieves the roster of a meeting the actor may see
func (s *meetingService) GetAttendees(ctx context.Context, actor *entities.User, meetingID uuid.UUID) ([]*entities.Attendee, error) {
	if _, err := s.GetMeeting(ctx, actor, meetingID); err != nil {
		return nil, err
	}
	return s.attendeeRepo.FindByMeetingID(ctx, meetingID)
}

func (s *meetingService) findMeeting(ctx context.Context, meetingID uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	return meeting, nil
}

// isInvited treats admins and the organizer as implicitly invited
func (s *meetingService) isInvited(ctx context.Context, meeting *entities.Meeting, actor *entities.User) (bool, error) {
	if actor.IsAdmin() || meeting.OrganizerID == actor.ID {
		return true, nil
	}
	invited, err := s.attendeeRepo.Exists(ctx, meeting.ID, actor.ID)
	if err != nil {
		return false, fmt.Errorf("failed to check invitation: %w", err)
	}
	return invited, nil
}
