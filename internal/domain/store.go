package domain

type StoreInfo struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"`
	Hours string `json:"hours"`
}
