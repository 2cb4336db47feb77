package constants

// Staff permissions. The catalog is closed: the user controller rejects ids
// outside this set.
const (
	PermViewReservations   = "view_reservations"
	PermManageReservations = "manage_reservations"
	PermMarkAttendance     = "mark_attendance"
	PermViewAnalytics      = "view_analytics"
	PermManageUsers        = "manage_users"
	PermManageSlots        = "manage_slots"
	PermSystemAdmin        = "system_admin"
	PermExportData         = "export_data"
	PermViewAllData        = "view_all_data"

	// Special permissions
	PermAny = "any"
)

// AllPermissions is the full catalog in display order.
var AllPermissions = []string{
	PermViewReservations,
	PermManageReservations,
	PermMarkAttendance,
	PermViewAnalytics,
	PermManageUsers,
	PermManageSlots,
	PermSystemAdmin,
	PermExportData,
	PermViewAllData,
}

// DefaultStaffPermissions is the grant a newly created staff account starts
// with. Managers never consult the stored set, the role implies everything.
var DefaultStaffPermissions = []string{
	PermViewReservations,
	PermManageReservations,
	PermMarkAttendance,
}

// IsKnownPermission reports whether id belongs to the catalog.
func IsKnownPermission(id string) bool {
	for _, p := range AllPermissions {
		if p == id {
			return true
		}
	}
	return false
}
