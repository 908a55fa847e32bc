package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysUser{},
	&SysOprLog{},
	// Salon
	&SalonService{},
	&Customer{},
	&Booking{},
	&ContactMessage{},
	// Assistant
	&ChatConversation{},
}
