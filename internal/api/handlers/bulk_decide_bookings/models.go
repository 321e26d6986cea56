package bulk_decide_bookings

// Поддерживаемые действия над списком бронирований
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// BulkDecideRequest HTTP request model пакетного решения
type BulkDecideRequest struct {
	Action     string  `json:"action"` // approve | reject
	BookingIDs []int64 `json:"bookingIds"`
}

// BulkDecideResult результат решения по одному бронированию
type BulkDecideResult struct {
	BookingID int64  `json:"bookingId"`
	Ok        bool   `json:"ok"`
	Reason    string `json:"reason"`
}

// BulkDecideResponse HTTP response model пакетного решения
type BulkDecideResponse struct {
	Results []BulkDecideResult `json:"results"`
}
