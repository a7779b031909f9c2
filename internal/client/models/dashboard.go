package models

type BarangayStat struct {
	Barangay string `json:"barangay"`
	Users    int    `json:"users"`
}

type DashboardStats struct {
	TotalUsers      int
	TotalProperties int
	Barangays       []BarangayStat
}
