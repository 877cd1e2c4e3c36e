package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrNIKExists        = errors.New("NIK already registered")
	ErrEmailExists      = errors.New("email already registered in this tenant")
	ErrManagerNotFound  = errors.New("manager not found")
	ErrSelfManager      = errors.New("employee cannot be their own manager")
	ErrManagerCycle     = errors.New("manager assignment would create a reporting cycle")
	ErrInvalidReference = errors.New("position, department or contract type does not exist")
)
