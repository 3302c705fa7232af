package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ApiRequest is one audited API call. Rows live in the service's own app
// schema, not the external core schema, so no column probing applies.
type ApiRequest struct {
	RequestID    uuid.UUID
	IPAddress    *string
	Method       string
	Route        string
	RequestBody  *string
	ResponseBody *string
	StatusCode   *int32
	DurationMs   *int64
	StartTs      time.Time
}

type RequestLogRepository interface {
	Add(db *sql.DB, req ApiRequest) (*ApiRequest, error)
	Update(db *sql.DB, req ApiRequest) error
}

type requestLogRepositoryHandler struct{}

func NewRequestLogRepository() RequestLogRepository {
	return requestLogRepositoryHandler{}
}

func (h requestLogRepositoryHandler) Add(db *sql.DB, req ApiRequest) (*ApiRequest, error) {
	if req.RequestID == uuid.Nil {
		req.RequestID = uuid.New()
	}
	_, err := db.Exec(`
		INSERT INTO app.api_request
			(request_id, ip_address, method, route, request_body, start_ts)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		req.RequestID, req.IPAddress, req.Method, req.Route, req.RequestBody, req.StartTs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add api request: %w", err)
	}
	return &req, nil
}

func (h requestLogRepositoryHandler) Update(db *sql.DB, req ApiRequest) error {
	_, err := db.Exec(`
		UPDATE app.api_request
		SET response_body = $2, status_code = $3, duration_ms = $4
		WHERE request_id = $1`,
		req.RequestID, req.ResponseBody, req.StatusCode, req.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("failed to update api request: %w", err)
	}
	return nil
}
