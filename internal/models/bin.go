package models

import "time"

// Bin statuses. "Full" triggers pickup task provisioning, "Empty" is set
// back as a side effect of task collection.
const (
	BinStatusEmpty = "Empty"
	BinStatusHalf  = "Half"
	BinStatusFull  = "Full"
)

type Bin struct {
	ID        string  `json:"id" db:"id"`
	BinID     string  `json:"bin_id" db:"bin_id"` // human-entered business key, unique
	Area      string  `json:"area" db:"area"`
	Status    string  `json:"status" db:"status"`
	UpdatedBy *string `json:"updated_by,omitempty" db:"updated_by"`
	CreatedAt int64   `json:"created_at" db:"created_at"`
	UpdatedAt int64   `json:"updated_at" db:"updated_at"`
}

// BinResponse is what we send to the client with an ISO timestamp
type BinResponse struct {
	ID           string  `json:"id"`
	BinID        string  `json:"bin_id"`
	Area         string  `json:"area"`
	Status       string  `json:"status"`
	UpdatedBy    *string `json:"updated_by,omitempty"`
	UpdatedAtIso string  `json:"updatedAtIso"`
}

// SaveBinRequest is the request body for POST /bins (upsert by bin_id)
type SaveBinRequest struct {
	BinID  string `json:"bin_id"`
	Area   string `json:"area"`
	Status string `json:"status"`
}

func ValidBinStatus(status string) bool {
	return status == BinStatusEmpty || status == BinStatusHalf || status == BinStatusFull
}

// ToBinResponse converts a Bin to BinResponse
func (b *Bin) ToBinResponse() BinResponse {
	return BinResponse{
		ID:           b.ID,
		BinID:        b.BinID,
		Area:         b.Area,
		Status:       b.Status,
		UpdatedBy:    b.UpdatedBy,
		UpdatedAtIso: time.Unix(b.UpdatedAt, 0).UTC().Format(time.RFC3339),
	}
}
