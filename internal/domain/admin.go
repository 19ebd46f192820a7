package domain

// User is the authenticated administrator or teacher profile.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Club is a weekly children's club meeting.
type Club struct {
	ID      string `json:"id"`
	Number  int    `json:"number"`
	Weekday string `json:"weekday"`
	Time    string `json:"time"`
	Active  bool   `json:"isActive"`
}

// Child is a child enrolled in a club.
type Child struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name"`
	BirthDate     string `json:"birthDate"`
	GuardianName  string `json:"guardianName,omitempty"`
	GuardianPhone string `json:"guardianPhone,omitempty"`
	ClubID        string `json:"clubId,omitempty"`
}

// DashboardStats summarizes the program for the dashboard.
type DashboardStats struct {
	TotalChildren   int     `json:"totalChildren"`
	TotalClubs      int     `json:"totalClubs"`
	TotalTeachers   int     `json:"totalTeachers"`
	PagelasThisWeek int     `json:"pagelasThisWeek"`
	AttendanceRate  float64 `json:"attendanceRate"`
}
