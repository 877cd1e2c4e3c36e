package employee

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/contract"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/employee"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/master"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/database/dbtest"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployees struct {
	rows map[string]employee.EmployeeWithDetails
	seq  int
}

func newFakeEmployees(rows ...employee.Employee) *fakeEmployees {
	f := &fakeEmployees{rows: map[string]employee.EmployeeWithDetails{}}
	for _, e := range rows {
		f.rows[e.ID] = employee.EmployeeWithDetails{Employee: e}
	}
	return f
}

func (f *fakeEmployees) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	f.seq++
	e.ID = "emp-new-" + string(rune('0'+f.seq))
	f.rows[e.ID] = employee.EmployeeWithDetails{Employee: e}
	return e, nil
}

func (f *fakeEmployees) GetByID(ctx context.Context, tenantID, id string) (employee.EmployeeWithDetails, error) {
	e, ok := f.rows[id]
	if !ok || e.TenantID != tenantID || e.IsDeleted {
		return employee.EmployeeWithDetails{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployees) List(ctx context.Context, tenantID string, filter employee.EmployeeFilter) ([]employee.EmployeeWithDetails, int64, error) {
	return nil, 0, nil
}

func (f *fakeEmployees) Update(ctx context.Context, tenantID string, req employee.UpdateEmployeeRequest) error {
	e, err := f.GetByID(ctx, tenantID, req.ID)
	if err != nil {
		return err
	}
	if req.ManagerID != nil {
		e.ManagerID = req.ManagerID
	}
	if req.FullName != nil {
		e.FullName = *req.FullName
	}
	f.rows[req.ID] = e
	return nil
}

func (f *fakeEmployees) UpdateAvatar(ctx context.Context, tenantID, id, avatarURL string) error {
	e, err := f.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	e.AvatarURL = &avatarURL
	f.rows[id] = e
	return nil
}

func (f *fakeEmployees) SoftDelete(ctx context.Context, tenantID, id string) error {
	e, err := f.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	e.IsDeleted = true
	f.rows[id] = e
	return nil
}

func (f *fakeEmployees) ManagerOf(ctx context.Context, tenantID, id string) (*string, error) {
	e, err := f.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return e.ManagerID, nil
}

type fakeContracts struct {
	created     []contract.Contract
	deactivated []string
	createErr   error
}

func (f *fakeContracts) Create(ctx context.Context, c contract.Contract) (contract.Contract, error) {
	if f.createErr != nil {
		return contract.Contract{}, f.createErr
	}
	c.ID = "c1"
	f.created = append(f.created, c)
	return c, nil
}

func (f *fakeContracts) GetByID(ctx context.Context, tenantID, id string) (contract.Contract, error) {
	return contract.Contract{}, contract.ErrContractNotFound
}

func (f *fakeContracts) ListByEmployee(ctx context.Context, tenantID, employeeID string) ([]contract.Contract, error) {
	return f.created, nil
}

func (f *fakeContracts) Update(ctx context.Context, tenantID string, req contract.UpdateContractRequest) (contract.Contract, error) {
	return contract.Contract{}, nil
}

func (f *fakeContracts) SoftDelete(ctx context.Context, tenantID, id string) error { return nil }

func (f *fakeContracts) DeactivateByEmployee(ctx context.Context, tenantID, employeeID string) error {
	f.deactivated = append(f.deactivated, employeeID)
	return nil
}

// fakeMaster knows which tenant owns each id.
type fakeMaster[T any] struct {
	master.Repository[T]
	owner    map[string]string
	notFound error
}

func (f *fakeMaster[T]) FindByID(ctx context.Context, tenantID, id string) (T, error) {
	var zero T
	if f.owner[id] != tenantID {
		return zero, f.notFound
	}
	return zero, nil
}

const (
	engineerID  = "0190a1b2-7c3d-7e4f-8a9b-000000000001"
	financeID   = "0190a1b2-7c3d-7e4f-8a9b-000000000002"
	permanentID = "0190a1b2-7c3d-7e4f-8a9b-0c1d2e3f4a5b"
	foreignID   = "0190a1b2-7c3d-7e4f-8a9b-0000000000ff"
)

func testRefs() References {
	return References{
		Positions:     &fakeMaster[master.Position]{owner: map[string]string{engineerID: "t1", foreignID: "t2"}, notFound: master.ErrPositionNotFound},
		Departments:   &fakeMaster[master.Department]{owner: map[string]string{financeID: "t1", foreignID: "t2"}, notFound: master.ErrDepartmentNotFound},
		ContractTypes: &fakeMaster[master.ContractType]{owner: map[string]string{permanentID: "t1", foreignID: "t2"}, notFound: master.ErrContractTypeNotFound},
	}
}

type fakeFiles struct {
	uploaded []string
	removed  []string
}

func (f *fakeFiles) UploadAvatar(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	key := "avatars/" + employeeID + "/" + filename
	f.uploaded = append(f.uploaded, key)
	return key, nil
}

func (f *fakeFiles) DeleteFile(ctx context.Context, key string) error {
	f.removed = append(f.removed, key)
	return nil
}

func (f *fakeFiles) URL(key string) string { return "http://files.local/" + key }

func ptr(s string) *string { return &s }

func person(id string, manager *string) employee.Employee {
	return employee.Employee{ID: id, TenantID: "t1", FullName: strings.ToUpper(id), ManagerID: manager}
}

func validCreate() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		NIK:           "3201010101010001",
		FullName:      "Siti Rahma",
		Email:         "siti@example.com",
		Gender:        "female",
		MaritalStatus: "single",
		HireDate:      "2025-01-06",
	}
}

func TestCreateEmployee_WithInitialContract(t *testing.T) {
	employees := newFakeEmployees()
	contracts := &fakeContracts{}
	tx := &dbtest.Transactor{}
	svc := NewEmployeeService(tx, employees, contracts, testRefs(), &fakeFiles{}, logger.Nop())

	req := validCreate()
	req.Contract = &employee.InitialContractRequest{
		ContractTypeID: permanentID,
		StartDate:      "2025-01-06",
	}
	require.NoError(t, req.Validate())

	resp, err := svc.CreateEmployee(context.Background(), "t1", req)
	require.NoError(t, err)
	assert.Equal(t, "Siti Rahma", resp.FullName)
	assert.Equal(t, "2025-01-06", resp.HireDate)

	require.Len(t, contracts.created, 1)
	assert.Equal(t, resp.ID, contracts.created[0].EmployeeID)
	assert.True(t, contracts.created[0].IsActive)
	assert.Equal(t, 1, tx.Commits)
}

func TestCreateEmployee_ContractFailureRollsBack(t *testing.T) {
	contracts := &fakeContracts{createErr: contract.ErrContractTypeInvalid}
	tx := &dbtest.Transactor{}
	svc := NewEmployeeService(tx, newFakeEmployees(), contracts, testRefs(), &fakeFiles{}, logger.Nop())

	req := validCreate()
	req.Contract = &employee.InitialContractRequest{ContractTypeID: permanentID, StartDate: "2025-01-06"}

	_, err := svc.CreateEmployee(context.Background(), "t1", req)
	assert.ErrorIs(t, err, contract.ErrContractTypeInvalid)
	assert.Equal(t, 1, tx.Rollbacks)
	assert.Zero(t, tx.Commits)
}

func TestCreateEmployee_UnknownManager(t *testing.T) {
	svc := NewEmployeeService(&dbtest.Transactor{}, newFakeEmployees(), &fakeContracts{}, testRefs(), &fakeFiles{}, logger.Nop())

	req := validCreate()
	req.ManagerID = ptr("ghost")
	_, err := svc.CreateEmployee(context.Background(), "t1", req)
	assert.ErrorIs(t, err, employee.ErrManagerNotFound)
}

func TestCreateEmployee_ReferencesMustBelongToTenant(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*employee.CreateEmployeeRequest)
		wantErr error
	}{
		{"foreign position", func(r *employee.CreateEmployeeRequest) { r.PositionID = ptr(foreignID) }, employee.ErrInvalidReference},
		{"foreign department", func(r *employee.CreateEmployeeRequest) { r.DepartmentID = ptr(foreignID) }, employee.ErrInvalidReference},
		{"unknown position", func(r *employee.CreateEmployeeRequest) { r.PositionID = ptr(financeID) }, employee.ErrInvalidReference},
		{"foreign contract type", func(r *employee.CreateEmployeeRequest) {
			r.Contract = &employee.InitialContractRequest{ContractTypeID: foreignID, StartDate: "2025-01-06"}
		}, contract.ErrContractTypeInvalid},
		{"foreign manager", func(r *employee.CreateEmployeeRequest) { r.ManagerID = ptr("outsider") }, employee.ErrManagerNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outsider := person("outsider", nil)
			outsider.TenantID = "t2"
			employees := newFakeEmployees(outsider)
			contracts := &fakeContracts{}
			tx := &dbtest.Transactor{}
			svc := NewEmployeeService(tx, employees, contracts, testRefs(), &fakeFiles{}, logger.Nop())

			req := validCreate()
			tt.mutate(&req)
			_, err := svc.CreateEmployee(context.Background(), "t1", req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Len(t, employees.rows, 1)
			assert.Empty(t, contracts.created)
			assert.Zero(t, tx.Commits)
		})
	}
}

func TestCreateEmployee_OwnReferences(t *testing.T) {
	svc := NewEmployeeService(&dbtest.Transactor{}, newFakeEmployees(), &fakeContracts{}, testRefs(), &fakeFiles{}, logger.Nop())

	req := validCreate()
	req.PositionID = ptr(engineerID)
	req.DepartmentID = ptr(financeID)
	_, err := svc.CreateEmployee(context.Background(), "t1", req)
	assert.NoError(t, err)
}

func TestUpdateEmployee_ForeignReferences(t *testing.T) {
	employees := newFakeEmployees(person("dev", nil))
	svc := NewEmployeeService(&dbtest.Transactor{}, employees, &fakeContracts{}, testRefs(), &fakeFiles{}, logger.Nop())
	ctx := context.Background()

	_, err := svc.UpdateEmployee(ctx, "t1", employee.UpdateEmployeeRequest{ID: "dev", PositionID: ptr(foreignID)})
	assert.ErrorIs(t, err, employee.ErrInvalidReference)

	_, err = svc.UpdateEmployee(ctx, "t1", employee.UpdateEmployeeRequest{ID: "dev", DepartmentID: ptr(foreignID)})
	assert.ErrorIs(t, err, employee.ErrInvalidReference)
}

func TestUpdateEmployee_ManagerRules(t *testing.T) {
	// ceo <- cto <- dev
	employees := newFakeEmployees(
		person("ceo", nil),
		person("cto", ptr("ceo")),
		person("dev", ptr("cto")),
	)
	svc := NewEmployeeService(&dbtest.Transactor{}, employees, &fakeContracts{}, testRefs(), &fakeFiles{}, logger.Nop())
	ctx := context.Background()

	_, err := svc.UpdateEmployee(ctx, "t1", employee.UpdateEmployeeRequest{ID: "dev", ManagerID: ptr("dev")})
	assert.ErrorIs(t, err, employee.ErrSelfManager)

	_, err = svc.UpdateEmployee(ctx, "t1", employee.UpdateEmployeeRequest{ID: "ceo", ManagerID: ptr("dev")})
	assert.ErrorIs(t, err, employee.ErrManagerCycle)

	_, err = svc.UpdateEmployee(ctx, "t1", employee.UpdateEmployeeRequest{ID: "dev", ManagerID: ptr("nobody")})
	assert.ErrorIs(t, err, employee.ErrManagerNotFound)

	resp, err := svc.UpdateEmployee(ctx, "t1", employee.UpdateEmployeeRequest{ID: "dev", ManagerID: ptr("ceo")})
	require.NoError(t, err)
	assert.Equal(t, "ceo", *resp.ManagerID)
}

func TestManagerChain(t *testing.T) {
	employees := newFakeEmployees(
		person("ceo", nil),
		person("cto", ptr("ceo")),
		person("dev", ptr("cto")),
	)
	svc := NewEmployeeService(&dbtest.Transactor{}, employees, &fakeContracts{}, testRefs(), &fakeFiles{}, logger.Nop())

	chain, err := svc.ManagerChain(context.Background(), "t1", "dev")
	require.NoError(t, err)
	require.Len(t, chain, 2)
	assert.Equal(t, "cto", chain[0].ID)
	assert.Equal(t, "ceo", chain[1].ID)

	chain, err = svc.ManagerChain(context.Background(), "t1", "ceo")
	require.NoError(t, err)
	assert.Empty(t, chain)
}

func TestManagerChain_StopsOnCorruptLoop(t *testing.T) {
	employees := newFakeEmployees(
		person("a", ptr("b")),
		person("b", ptr("a")),
	)
	svc := NewEmployeeService(&dbtest.Transactor{}, employees, &fakeContracts{}, testRefs(), &fakeFiles{}, logger.Nop())

	_, err := svc.ManagerChain(context.Background(), "t1", "a")
	assert.ErrorIs(t, err, employee.ErrManagerCycle)
}

func TestDeleteEmployee_DeactivatesContracts(t *testing.T) {
	employees := newFakeEmployees(person("dev", nil))
	contracts := &fakeContracts{}
	svc := NewEmployeeService(&dbtest.Transactor{}, employees, contracts, testRefs(), &fakeFiles{}, logger.Nop())
	ctx := context.Background()

	require.NoError(t, svc.DeleteEmployee(ctx, "t1", "dev"))
	assert.Equal(t, []string{"dev"}, contracts.deactivated)

	_, err := svc.GetEmployee(ctx, "t1", "dev")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.ErrorIs(t, svc.DeleteEmployee(ctx, "t1", "dev"), employee.ErrEmployeeNotFound)
}

func TestUploadAvatar_ReplacesPreviousFile(t *testing.T) {
	old := "avatars/dev/old.jpg"
	dev := person("dev", nil)
	dev.AvatarURL = &old
	files := &fakeFiles{}
	svc := NewEmployeeService(&dbtest.Transactor{}, newFakeEmployees(dev), &fakeContracts{}, testRefs(), files, logger.Nop())

	resp, err := svc.UploadAvatar(context.Background(), "t1", "dev", strings.NewReader("img"), "me.png")
	require.NoError(t, err)
	assert.Equal(t, "http://files.local/avatars/dev/me.png", *resp.AvatarURL)
	assert.Equal(t, []string{old}, files.removed)
}

func TestUploadAvatar_UnknownEmployeeStoresNothing(t *testing.T) {
	files := &fakeFiles{}
	svc := NewEmployeeService(&dbtest.Transactor{}, newFakeEmployees(), &fakeContracts{}, testRefs(), files, logger.Nop())

	_, err := svc.UploadAvatar(context.Background(), "t1", "ghost", strings.NewReader("img"), "me.png")
	assert.True(t, errors.Is(err, employee.ErrEmployeeNotFound))
	assert.Empty(t, files.uploaded)
}
