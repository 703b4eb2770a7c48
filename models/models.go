package models

// All lists every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&Role{},
		&User{},
		&Company{},
		&Job{},
		&Application{},
		&SavedJob{},
		&Notification{},
		&ActivityLog{},
		&EmployerProfile{},
		&SeekerProfile{},
		&Conversation{},
		&ConversationParticipant{},
		&Message{},
	}
}
