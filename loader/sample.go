package loader

import (
	"github.com/awantoch/procmap/table"
)

// Sample returns the demonstration table: an eight-step employee
// onboarding process across three lanes, with every optional column
// populated somewhere.
func Sample() *table.Table {
	columns := []string{
		"ProcessName", "ProcessID", "Lane", "SystemUsed", "Trigger", "FinalOutput",
		"StepID", "StepOrder", "StepLabel", "StepType", "NextStep", "YesNext", "NoNext",
		"SLA", "AutomationPotential", "ProcessRisk", "ControlDescription", "RelatedDocuments", "Notes",
	}
	rows := [][]string{
		{"Employee Onboarding", "P-ONB-001", "HR", "WorkDay", "New hire acceptance email", "", "S1", "1", "Create HR profile", "process", "S2", "", "", "4 hours", "Yes", "Low", "Automated validation", "HR-Policy-001.pdf", "Integrated with background check system"},
		{"Employee Onboarding", "P-ONB-001", "HR", "WorkDay", "", "", "S2", "2", "Verify documents", "decision", "", "S3", "S1", "1 day", "No", "High", "Manual document check", "Doc-Verification-Guide.pdf", "Requires passport and visa check"},
		{"Employee Onboarding", "P-ONB-001", "IT", "Active Directory", "", "", "S3", "3", "Create AD account", "process", "S4", "", "", "2 hours", "Yes", "Medium", "Auto-provisioning", "IT-Provisioning-SOP.pdf", "Auto-creates email and basic access"},
		{"Employee Onboarding", "P-ONB-001", "IT", "ServiceNow", "", "", "S4", "4", "Assign equipment", "manual", "S5", "", "", "1 day", "No", "Low", "Physical asset tracking", "Equipment-Inventory.xlsx", "Laptop, phone, badge assignment"},
		{"Employee Onboarding", "P-ONB-001", "IT", "ServiceNow", "", "", "S5", "5", "Setup access", "process", "S6", "", "", "4 hours", "Yes", "Medium", "RBAC enforcement", "Access-Control-Matrix.xlsx", "Based on role and department"},
		{"Employee Onboarding", "P-ONB-001", "Manager", "Email", "", "", "S6", "6", "Review onboarding", "manual", "S7", "", "", "", "No", "Low", "Manager approval", "", "Manager confirms readiness"},
		{"Employee Onboarding", "P-ONB-001", "Manager", "Outlook", "", "", "S7", "7", "Schedule 1:1", "process", "S8", "", "", "1 week", "No", "Low", "Calendar integration", "Onboarding-Checklist.docx", "First week check-in meeting"},
		{"Employee Onboarding", "P-ONB-001", "HR", "WorkDay", "", "Employee fully onboarded", "S8", "8", "Complete onboarding", "end", "", "", "", "", "No", "Low", "Completion checklist", "Onboarding-Completion-Form.pdf", "Final confirmation and feedback"},
	}
	return table.New(columns, rows)
}
