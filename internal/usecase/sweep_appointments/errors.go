package sweep_appointments

import "errors"

// ErrInternal возвращается при ошибке удаления записей
var ErrInternal = errors.New("sweep_appointments: internal error")
