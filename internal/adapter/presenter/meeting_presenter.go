package presenter

import (
	"time"

	meetingdto "github.com/warf-hq/warf-backend/internal/adapter/dto/meeting"
	"github.com/warf-hq/warf-backend/internal/domain/entities"
	meetingusecase "github.com/warf-hq/warf-backend/internal/usecase/meeting"
)

// ToMeetingResponse converts a meeting entity to its response DTO
func ToMeetingResponse(m *entities.Meeting) meetingdto.MeetingResponse {
	now := time.Now()
	resp := meetingdto.MeetingResponse{
		ID:               m.ID,
		Title:            m.Title,
		StartsAt:         m.StartsAt,
		EndsAt:           m.EndsAt,
		JoinEarlyMinutes: m.JoinEarlyMinutes,
		JoinLateMinutes:  m.JoinLateMinutes,
		OrganizerID:      m.OrganizerID,
		Location:         m.Location,
		Agenda:           m.Agenda,
		Mode:             string(m.Mode),
		RoomName:         m.RoomName,
		RoomDomain:       m.RoomDomain,
		RequireFace:      m.RequireFaceVerification,
		HasTranscript:    m.TranscriptText != "",
		IsOpen:           m.IsOpenNow(now),
		OpenStatus:       m.OpenStatusMessage(now),
		CreatedAt:        m.CreatedAt,
	}
	if m.Organizer != nil {
		resp.OrganizerName = m.Organizer.DisplayName()
	}
	return resp
}

// ToMeetingListResponse converts a slice of meetings
func ToMeetingListResponse(meetings []*entities.Meeting) []meetingdto.MeetingResponse {
	out := make([]meetingdto.MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, ToMeetingResponse(m))
	}
	return out
}

// ToJoinDecisionResponse converts a join decision
func ToJoinDecisionResponse(d *meetingusecase.JoinDecision) meetingdto.JoinDecisionResponse {
	return meetingdto.JoinDecisionResponse{
		Allowed:     d.Allowed,
		Reason:      string(d.Reason),
		Message:     d.Message,
		RoomName:    d.RoomName,
		RoomDomain:  d.RoomDomain,
		RequireFace: d.RequireFaceVerification,
		Verified:    d.FaceVerified,
	}
}

// ToVerifyFaceResponse converts a verification result
func ToVerifyFaceResponse(r *meetingusecase.VerifyFaceResult) meetingdto.VerifyFaceResponse {
	return meetingdto.VerifyFaceResponse{
		Verified:   r.Verified,
		Confidence: r.Confidence,
		Message:    r.Message,
	}
}

// ToAttendeeListResponse converts a meeting roster
func ToAttendeeListResponse(attendees []*entities.Attendee) []meetingdto.AttendeeResponse {
	out := make([]meetingdto.AttendeeResponse, 0, len(attendees))
	for _, a := range attendees {
		resp := meetingdto.AttendeeResponse{
			UserID:         a.UserID,
			Role:           string(a.Role),
			FaceVerified:   a.FaceVerified,
			FaceVerifiedAt: a.FaceVerifiedAt,
		}
		if a.User != nil {
			resp.Username = a.User.Username
			resp.DisplayName = a.User.DisplayName()
		}
		out = append(out, resp)
	}
	return out
}
