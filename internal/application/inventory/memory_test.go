package inventory_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/clinivac/npwt-inventario/internal/domain"
	"github.com/clinivac/npwt-inventario/internal/domain/entity"
	"github.com/clinivac/npwt-inventario/internal/domain/repository"
)

// Fakes en memoria de los puertos de persistencia. El txRunner falso toma un
// snapshot antes de fn y lo restaura si fn falla, emulando el rollback real.

type memProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	// failIncrementFor fuerza el fallo de IncrementStock para un producto.
	failIncrementFor map[string]error
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{
		products:         make(map[string]*entity.Product),
		failIncrementFor: make(map[string]error),
	}
}

func (r *memProductRepo) snapshot() map[string]entity.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := make(map[string]entity.Product, len(r.products))
	for id, p := range r.products {
		snap[id] = *p
	}
	return snap
}

func (r *memProductRepo) restore(snap map[string]entity.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = make(map[string]*entity.Product, len(snap))
	for id := range snap {
		p := snap[id]
		r.products[id] = &p
	}
}

func (r *memProductRepo) Create(product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Code == product.Code {
			return domain.ErrDuplicateCode
		}
	}
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// GetByIDForUpdate en memoria no bloquea filas; lee igual que GetByID.
func (r *memProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) GetByCode(code string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *memProductRepo) IncrementStock(productID string, qty int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.failIncrementFor[productID]; ok {
		return err
	}
	p, ok := r.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock += qty
	return nil
}

func (r *memProductRepo) DecrementStock(productID string, qty int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok {
		return false, domain.ErrNotFound
	}
	if p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	return true, nil
}

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	all, _ := r.ListAll()
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *memProductRepo) ListAll() ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *memProductRepo) ListBelowMinimum(_ context.Context) ([]*entity.Product, error) {
	all, _ := r.ListAll()
	var low []*entity.Product
	for _, p := range all {
		if p.Stock <= p.MinStock {
			low = append(low, p)
		}
	}
	return low, nil
}

func (r *memProductRepo) Count() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.products), nil
}

type memMovementRepo struct {
	mu        sync.Mutex
	movements []*entity.Movement
}

func newMemMovementRepo() *memMovementRepo { return &memMovementRepo{} }

func (r *memMovementRepo) snapshot() []*entity.Movement {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := make([]*entity.Movement, len(r.movements))
	copy(snap, r.movements)
	return snap
}

func (r *memMovementRepo) restore(snap []*entity.Movement) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = snap
}

func (r *memMovementRepo) Create(m *entity.Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *memMovementRepo) ListByProduct(productID string, limit int) ([]*entity.Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.Movement
	for _, m := range r.movements {
		if m.ProductID == productID {
			cp := *m
			list = append(list, &cp)
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *memMovementRepo) ListOutInRange(_ context.Context, from, to time.Time) ([]*entity.Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.Movement
	for _, m := range r.movements {
		if m.Direction == entity.DirectionOut && !m.CreatedAt.Before(from) && !m.CreatedAt.After(to) {
			cp := *m
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *memMovementRepo) DistinctProcedureIDs(_ context.Context, productID string, from, to time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]bool)
	var ids []string
	for _, m := range r.movements {
		if m.ProductID != productID || m.RefKind != entity.RefProcedure || m.RefID == "" {
			continue
		}
		if m.CreatedAt.Before(from) || m.CreatedAt.After(to) {
			continue
		}
		if !seen[m.RefID] {
			seen[m.RefID] = true
			ids = append(ids, m.RefID)
		}
	}
	return ids, nil
}

func (r *memMovementRepo) SignedSumByProduct(_ context.Context, productID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum int64
	for _, m := range r.movements {
		if m.ProductID == productID {
			sum += m.Signed()
		}
	}
	return sum, nil
}

func (r *memMovementRepo) CountInRange(_ context.Context, from, to time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.movements {
		if !m.CreatedAt.Before(from) && !m.CreatedAt.After(to) {
			n++
		}
	}
	return n, nil
}

// byProduct filtra movimientos por producto y motivo (helper de aserciones).
func (r *memMovementRepo) byProduct(productID, refKind string) []*entity.Movement {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.Movement
	for _, m := range r.movements {
		if m.ProductID == productID && (refKind == "" || m.RefKind == refKind) {
			list = append(list, m)
		}
	}
	return list
}

type memProcedureRepo struct {
	mu         sync.Mutex
	procedures map[string]*entity.Procedure
	consumed   []*entity.ProcedureProduct
	// failCreateProduct fuerza el fallo del insert de consumo.
	failCreateProduct error
}

func newMemProcedureRepo() *memProcedureRepo {
	return &memProcedureRepo{procedures: make(map[string]*entity.Procedure)}
}

func (r *memProcedureRepo) snapshot() []*entity.ProcedureProduct {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := make([]*entity.ProcedureProduct, len(r.consumed))
	copy(snap, r.consumed)
	return snap
}

func (r *memProcedureRepo) restore(snap []*entity.ProcedureProduct) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.consumed = snap
}

func (r *memProcedureRepo) Create(p *entity.Procedure) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.procedures[p.ID] = &cp
	return nil
}

func (r *memProcedureRepo) GetByID(id string) (*entity.Procedure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.procedures[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProcedureRepo) UpdateStatus(id, status, endTime string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.procedures[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = status
	if endTime != "" {
		p.EndTime = endTime
	}
	return nil
}

func (r *memProcedureRepo) List(limit, offset int) ([]*entity.Procedure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]*entity.Procedure, 0, len(r.procedures))
	for _, p := range r.procedures {
		cp := *p
		list = append(list, &cp)
	}
	return list, nil
}

func (r *memProcedureRepo) CountCreatedInRange(_ context.Context, from, to time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.procedures {
		if !p.CreatedAt.Before(from) && !p.CreatedAt.After(to) {
			n++
		}
	}
	return n, nil
}

func (r *memProcedureRepo) ExistsActiveByMachine(machineID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.procedures {
		if p.MachineID == machineID && p.Status == entity.ProcedureActive {
			return true, nil
		}
	}
	return false, nil
}

func (r *memProcedureRepo) CountByStatus(status string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.procedures {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *memProcedureRepo) PatientIDsByProcedures(_ context.Context, procedureIDs []string) (map[string]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make(map[string]string)
	for _, id := range procedureIDs {
		if p, ok := r.procedures[id]; ok {
			result[id] = p.PatientID
		}
	}
	return result, nil
}

func (r *memProcedureRepo) CreateProduct(pp *entity.ProcedureProduct) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreateProduct != nil {
		return r.failCreateProduct
	}
	cp := *pp
	r.consumed = append(r.consumed, &cp)
	return nil
}

func (r *memProcedureRepo) ListProducts(procedureID string) ([]*entity.ProcedureProduct, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.ProcedureProduct
	for _, pp := range r.consumed {
		if pp.ProcedureID == procedureID {
			cp := *pp
			list = append(list, &cp)
		}
	}
	return list, nil
}

type memPatientRepo struct {
	mu       sync.Mutex
	patients map[string]*entity.Patient
	// failGetByID fuerza el fallo de GetByID.
	failGetByID error
}

func newMemPatientRepo() *memPatientRepo {
	return &memPatientRepo{patients: make(map[string]*entity.Patient)}
}

func (r *memPatientRepo) Create(p *entity.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.patients[p.ID] = &cp
	return nil
}

func (r *memPatientRepo) GetByID(id string) (*entity.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failGetByID != nil {
		return nil, r.failGetByID
	}
	p, ok := r.patients[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPatientRepo) Update(p *entity.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.patients[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.patients[p.ID] = &cp
	return nil
}

func (r *memPatientRepo) UpdateStatus(id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.patients[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = status
	return nil
}

func (r *memPatientRepo) List(limit, offset int) ([]*entity.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]*entity.Patient, 0, len(r.patients))
	for _, p := range r.patients {
		cp := *p
		list = append(list, &cp)
	}
	return list, nil
}

// memTxRunner ejecuta fn contra los repos en memoria con semántica de
// rollback: si fn falla, el estado vuelve al snapshot previo.
type memTxRunner struct {
	products   *memProductRepo
	movements  *memMovementRepo
	procedures *memProcedureRepo
	// before corre al inicio de Run, antes del snapshot. Sirve para intercalar
	// otra operación y emular una transacción que commitea primero.
	before func()
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	procRepo repository.ProcedureRepository,
) error) error {
	if r.before != nil {
		r.before()
	}
	snapP := r.products.snapshot()
	snapM := r.movements.snapshot()
	snapC := r.procedures.snapshot()
	if err := fn(r.products, r.movements, r.procedures); err != nil {
		r.products.restore(snapP)
		r.movements.restore(snapM)
		r.procedures.restore(snapC)
		return err
	}
	return nil
}

var errSimulatedDB = errors.New("fallo simulado de base de datos")
