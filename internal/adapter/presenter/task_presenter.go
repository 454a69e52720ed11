package presenter

import (
	taskdto "github.com/warf-hq/warf-backend/internal/adapter/dto/task"
	"github.com/warf-hq/warf-backend/internal/domain/entities"
	taskusecase "github.com/warf-hq/warf-backend/internal/usecase/task"
)

// ToTaskResponse converts a task entity to its response DTO
func ToTaskResponse(t *entities.Task) taskdto.TaskResponse {
	resp := taskdto.TaskResponse{
		ID:           t.ID,
		MeetingID:    t.MeetingID,
		Title:        t.Title,
		Description:  t.Description,
		AssignedToID: t.AssignedToID,
		Priority:     string(t.Priority),
		Status:       string(t.Status),
		DueDate:      t.DueDate,
		SolutionText: t.SolutionText,
		SubmittedAt:  t.SubmittedAt,
		CreatedAt:    t.CreatedAt,
	}
	if t.Meeting != nil {
		resp.MeetingTitle = t.Meeting.Title
	}
	if t.AssignedTo != nil {
		resp.AssignedTo = t.AssignedTo.DisplayName()
	}
	return resp
}

// ToTaskListResponse converts a slice of tasks
func ToTaskListResponse(tasks []*entities.Task) []taskdto.TaskResponse {
	out := make([]taskdto.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, ToTaskResponse(t))
	}
	return out
}

// ToMaterializeResponse converts a materialization result
func ToMaterializeResponse(r *taskusecase.MaterializeResult) taskdto.MaterializeResponse {
	return taskdto.MaterializeResponse{
		Created: r.Created,
		Skipped: r.Skipped,
		Total:   r.Total,
	}
}
