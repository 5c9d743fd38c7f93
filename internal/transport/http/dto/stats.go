package dto

// DashboardStats is a read-model snapshot recomputed on every request; it is
// never persisted.
type DashboardStats struct {
	Blogs          BlogCounts `json:"blogs"`
	Views          ViewStats  `json:"views"`
	Tags           TagStats   `json:"tags"`
	PendingReviews int64      `json:"pendingReviews"`
}

// BlogCounts carries the per-status breakdown. Total sums only the four
// recognized lifecycle statuses; anything else in the collection is left out.
type BlogCounts struct {
	Total         int64 `json:"total"`
	Published     int64 `json:"published"`
	Draft         int64 `json:"draft"`
	Review        int64 `json:"review"`
	PendingReview int64 `json:"pendingReview"`
}

type ViewStats struct {
	Total     int64  `json:"total"`
	Formatted string `json:"formatted"`
}

type TagStats struct {
	Total int64 `json:"total"`
}

type StatsResponse struct {
	Success bool           `json:"success"`
	Stats   DashboardStats `json:"stats"`
}
