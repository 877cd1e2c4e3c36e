package master

import "errors"

var (
	ErrPositionNotFound       = errors.New("position not found")
	ErrPositionNameExists     = errors.New("position with this name already exists")
	ErrDepartmentNotFound     = errors.New("department not found")
	ErrDepartmentNameExists   = errors.New("department with this name already exists")
	ErrContractTypeNotFound   = errors.New("contract type not found")
	ErrContractTypeNameExists = errors.New("contract type with this name already exists")
)
