package presenter

import (
	minutesdto "github.com/warf-hq/warf-backend/internal/adapter/dto/minutes"
	"github.com/warf-hq/warf-backend/internal/domain/entities"
	minutesusecase "github.com/warf-hq/warf-backend/internal/usecase/minutes"
)

// ToMinutesResponse converts a minutes entity to its response DTO. The stored
// decision text is parsed here so clients always get structured content, even
// for records written by the legacy pipeline.
func ToMinutesResponse(m *entities.Minutes) minutesdto.MinutesResponse {
	resp := minutesdto.MinutesResponse{
		ID:               m.ID,
		MeetingID:        m.MeetingID,
		DiscussionPoints: m.DiscussionPoints,
		Summary:          m.Summary,
		AISummary:        m.AISummary,
		AIGeneratedAt:    m.AIGeneratedAt,
		Status:           string(m.Status),
		IsLocked:         m.IsLocked,
		ApprovedAt:       m.ApprovedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.Meeting != nil {
		resp.MeetingTitle = m.Meeting.Title
	}
	if m.ApprovedBy != nil {
		resp.ApprovedBy = m.ApprovedBy.DisplayName()
	}

	if payload := minutesusecase.ParseDecisionPayload(m.AIDecisions); !payload.IsEmpty() {
		resp.Decisions = toDecisionPayloadResponse(payload)
	}

	return resp
}

// ToMinutesListResponse converts a slice of minutes records
func ToMinutesListResponse(records []*entities.Minutes) []minutesdto.MinutesResponse {
	out := make([]minutesdto.MinutesResponse, 0, len(records))
	for _, m := range records {
		out = append(out, ToMinutesResponse(m))
	}
	return out
}

func toDecisionPayloadResponse(payload minutesusecase.DecisionPayload) *minutesdto.DecisionPayloadResponse {
	resp := &minutesdto.DecisionPayloadResponse{
		Decisions: payload.Decisions,
		Raw:       payload.Raw,
	}
	for _, item := range payload.ActionItems {
		resp.ActionItems = append(resp.ActionItems, minutesdto.ActionItemResponse{
			Title:    item.Title,
			Assignee: item.Assignee,
			Priority: item.Priority,
			DueDate:  item.DueDate,
		})
	}
	return resp
}
