package dto

// CreditStatistics is the rollup returned by GET /statistics/credits
type CreditStatistics struct {
	Total          int64            `json:"total"`
	ByStatus       map[string]int64 `json:"byStatus"`
	ByPillar       map[string]int64 `json:"byPillar"`
	ValidationRate float64          `json:"validationRate" example:"75.00"`
}

// AbsenceReportRow is a single student line in the absences report
type AbsenceReportRow struct {
	StudentID    int64   `json:"studentId"`
	StudentName  string  `json:"studentName"`
	Grade        int     `json:"grade"`
	Excused      int     `json:"excused"`
	Unexcused    int     `json:"unexcused"`
	MaxAllowed   int     `json:"maxAllowed"`
	UsedPercent  float64 `json:"usedPercent" example:"80.67"`
	Critical     bool    `json:"critical"`
}

// AbsenceReport is the rollup returned by GET /reports/absences
type AbsenceReport struct {
	Rows          []AbsenceReportRow `json:"rows"`
	TotalStudents int64              `json:"totalStudents"`
	CriticalCount int64              `json:"criticalCount"`
	ByGrade       map[int]int64      `json:"byGrade"`
}

// EventStatistics is the rollup returned by GET /reports/events
type EventStatistics struct {
	TotalEvents       int64   `json:"totalEvents"`
	TotalRegistered   int64   `json:"totalRegistered"`
	TotalAttended     int64   `json:"totalAttended"`
	AttendanceRate    float64 `json:"attendanceRate" example:"62.50"`
	ParticipationRate float64 `json:"participationRate" example:"40.00"`
}

// RankedStudent is a single top-N ranking entry
type RankedStudent struct {
	StudentID   int64  `json:"studentId"`
	StudentName string `json:"studentName"`
	Count       int64  `json:"count"`
}

// RankedHobby is a single popular-hobby entry
type RankedHobby struct {
	Hobby string `json:"hobby"`
	Count int64  `json:"count"`
}

// OverviewStatistics is the dashboard rollup for teachers/admins
type OverviewStatistics struct {
	Credits         CreditStatistics `json:"credits"`
	Events          EventStatistics  `json:"events"`
	TopAchievers    []RankedStudent  `json:"topAchievers"`
	PopularHobbies  []RankedHobby    `json:"popularHobbies"`
	StudentsByGrade map[int]int64    `json:"studentsByGrade"`
}
