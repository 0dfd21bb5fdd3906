package dto

type StudentStats struct {
	Count           int64   `json:"count"`
	TotalFee        float64 `json:"total_fee"`
	PaidAmount      float64 `json:"paid_amount"`
	RemainingAmount float64 `json:"remaining_amount"`
}

type TeacherStats struct {
	Count       int64   `json:"count"`
	TotalSalary float64 `json:"total_salary"`
	PaidAmount  float64 `json:"paid_amount"`
}

// OverviewResponse is the back office dashboard summary.
type OverviewResponse struct {
	TotalUsers int64        `json:"total_users"`
	Students   StudentStats `json:"students"`
	Teachers   TeacherStats `json:"teachers"`
}
