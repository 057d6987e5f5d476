package balance

type BalanceResponse struct {
	LeaveType string `json:"leave_type"`
	Days      int    `json:"days"`
}
