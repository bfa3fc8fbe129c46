package reminder

import "errors"

var (
	ErrReminderNotFound = errors.New("reminder not found")

	// ErrDuplicateReminder signals a lost race on the (medication, date)
	// unique index. Callers recover by re-reading the winner's row.
	ErrDuplicateReminder = errors.New("reminder already exists for this medication and date")
)
