package maintenance

import "time"

// SeedRecords returns the maintenance history the dashboard starts with.
func SeedRecords() []Record {
	day := func(s string) time.Time {
		t, _ := time.Parse(time.DateOnly, s)
		return t
	}
	return []Record{
		{Date: day("2024-01-15"), IssueType: "Bearing Wear", ActionTaken: "Replaced bearings", Component: "Motor", DowntimeMinutes: 120},
		{Date: day("2024-01-10"), IssueType: "Oil Leak", ActionTaken: "Sealed gaskets", Component: "Gearbox", DowntimeMinutes: 45},
		{Date: day("2024-01-05"), IssueType: "High Vibration", ActionTaken: "Realigned shaft", Component: "Coupling", DowntimeMinutes: 90},
		{Date: day("2023-12-28"), IssueType: "Overheating", ActionTaken: "Cleaned cooling fins", Component: "Motor", DowntimeMinutes: 30},
		{Date: day("2023-12-20"), IssueType: "Oil Degradation", ActionTaken: "Oil change", Component: "Gearbox", DowntimeMinutes: 60},
		{Date: day("2023-12-15"), IssueType: "Belt Wear", ActionTaken: "Replaced belt", Component: "Coupling", DowntimeMinutes: 40},
		{Date: day("2023-12-08"), IssueType: "Electrical Fault", ActionTaken: "Replaced capacitor", Component: "Motor", DowntimeMinutes: 75},
	}
}
