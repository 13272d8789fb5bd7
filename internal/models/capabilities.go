package models

// Capability names one permissible action. Handlers resolve exactly one
// capability per request instead of comparing roles ad hoc.
type Capability string

const (
	CapManageStudents     Capability = "students.manage"
	CapViewStudents       Capability = "students.view"
	CapManageStaff        Capability = "staff.manage"
	CapRecordSessions     Capability = "sessions.record"
	CapRecordMilestones   Capability = "milestones.record"
	CapManageTemplates    Capability = "milestones.templates"
	CapManageShop         Capability = "shop.manage"
	CapPlaceOrders        Capability = "orders.place"
	CapManageOrders       Capability = "orders.manage"
	CapPostNotices        Capability = "notices.post"
	CapReplyNotices       Capability = "notices.reply"
	CapRecordPayments     Capability = "payments.record"
	CapManageSettings     Capability = "settings.manage"
	CapViewSystemLogs     Capability = "systemlogs.view"
	CapManageApplications Capability = "applications.manage"
)

var roleCapabilities = map[Role]map[Capability]bool{
	RoleSuperAdmin: {
		CapManageStudents: true, CapViewStudents: true, CapManageStaff: true,
		CapRecordSessions: true, CapRecordMilestones: true, CapManageTemplates: true,
		CapManageShop: true, CapPlaceOrders: true, CapManageOrders: true,
		CapPostNotices: true, CapReplyNotices: true, CapRecordPayments: true,
		CapManageSettings: true, CapViewSystemLogs: true, CapManageApplications: true,
	},
	RoleSpecialist: {
		CapViewStudents: true, CapRecordSessions: true, CapRecordMilestones: true,
		CapPostNotices: true, CapReplyNotices: true,
	},
	RoleAdminSupport: {
		CapManageStudents: true, CapViewStudents: true, CapManageShop: true,
		CapManageOrders: true, CapPostNotices: true, CapReplyNotices: true,
		CapRecordPayments: true, CapManageApplications: true,
	},
	RoleParent: {
		CapPlaceOrders: true, CapReplyNotices: true,
	},
	RoleStudent: {
		CapPlaceOrders: true,
	},
}

func RoleCan(role Role, capability Capability) bool {
	return roleCapabilities[role][capability]
}
