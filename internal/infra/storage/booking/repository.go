package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-VisitBookingService/internal/domain"
	"github.com/m04kA/SMC-VisitBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VisitBookingService/pkg/psqlbuilder"
)

// sizeSubquery подзапрос для вычисления размера бронирования (количества участников)
const sizeSubquery = "(SELECT COUNT(*) FROM persons p WHERE p.booking_id = bookings.id) AS size"

// Repository репозиторий для работы с бронированиями и участниками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateWithPersons создает бронирование вместе со всеми участниками
// Участники фиксируются при создании и после не добавляются и не удаляются,
// поэтому вставка выполняется одним пакетом
//
// Метод должен вызываться внутри транзакции (через transaction manager),
// чтобы бронирование без участников не стало наблюдаемым
func (r *Repository) CreateWithPersons(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if len(b.Persons) == 0 {
		return nil, ErrNoPersons
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"booking_date",
			"time_segment",
			"status",
			"primary_person_name",
			"primary_contact",
		).
		Values(
			b.BookingDate,
			b.TimeSegment,
			b.Status,
			b.PrimaryPersonName,
			b.PrimaryContact,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateWithPersons - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: CreateWithPersons - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	insertPersons := psqlbuilder.Insert("persons").
		Columns("booking_id", "name", "identity_number", "identity_details")

	for _, person := range b.Persons {
		insertPersons = insertPersons.Values(b.ID, person.Name, person.IdentityNumber, person.IdentityDetails)
	}

	query, args, err = insertPersons.Suffix("RETURNING id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateWithPersons - build persons insert: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateWithPersons - execute persons insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		if i >= len(b.Persons) {
			break
		}
		if err := rows.Scan(&b.Persons[i].ID); err != nil {
			return nil, fmt.Errorf("%w: CreateWithPersons - scan person id: %v", ErrScanRow, err)
		}
		b.Persons[i].BookingID = b.ID
		i++
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CreateWithPersons - rows error: %v", ErrScanRow, err)
	}

	b.Size = len(b.Persons)

	return b, nil
}

// GetByID получает бронирование по ID вместе с его размером
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_date",
		"time_segment",
		"status",
		"primary_person_name",
		"primary_contact",
		sizeSubquery,
		"created_at",
		"updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&b.BookingDate,
		&b.TimeSegment,
		&b.Status,
		&b.PrimaryPersonName,
		&b.PrimaryContact,
		&b.Size,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// ListByDateSegment получает все бронирования группы (date, segment)
//
// Внутри транзакции добавляет FOR UPDATE и тем самым блокирует всю группу.
// Блокировка только целевого бронирования недостаточна: два конкурентных
// одобрения разных бронирований одной группы прочитали бы одинаковую занятость
// и оба решили бы, что места есть. Блокировка группы сериализует решения
// по одному сегменту, не затрагивая другие даты и сегменты.
//
// Вне транзакции (запрос доступности) блокировка не берется
func (r *Repository) ListByDateSegment(ctx context.Context, date time.Time, segment domain.TimeSegment) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"booking_date",
		"time_segment",
		"status",
		"primary_person_name",
		"primary_contact",
		sizeSubquery,
		"created_at",
		"updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"booking_date": date}).
		Where(squirrel.Eq{"time_segment": segment}).
		OrderBy("id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF bookings")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateSegment - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateSegment - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// CountApprovedPersons считает занятость группы (date, segment) -
// суммарное количество участников одобренных бронирований
//
// Внутри транзакции одобрения вызывается после блокировки группы,
// поэтому видит только зафиксированное состояние
func (r *Repository) CountApprovedPersons(ctx context.Context, date time.Time, segment domain.TimeSegment) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(p.id)").
		From("persons p").
		Join("bookings b ON b.id = p.booking_id").
		Where(squirrel.Eq{"b.booking_date": date}).
		Where(squirrel.Eq{"b.time_segment": segment}).
		Where(squirrel.Eq{"b.status": domain.StatusApproved}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountApprovedPersons - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountApprovedPersons - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountApprovedPersonsByDate считает занятость всех сегментов даты одним запросом
// Сегменты без одобренных бронирований в результат не попадают
func (r *Repository) CountApprovedPersonsByDate(ctx context.Context, date time.Time) (map[domain.TimeSegment]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("b.time_segment", "COUNT(p.id)").
		From("persons p").
		Join("bookings b ON b.id = p.booking_id").
		Where(squirrel.Eq{"b.booking_date": date}).
		Where(squirrel.Eq{"b.status": domain.StatusApproved}).
		GroupBy("b.time_segment").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountApprovedPersonsByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountApprovedPersonsByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	usage := make(map[domain.TimeSegment]int)
	for rows.Next() {
		var segment domain.TimeSegment
		var count int
		if err := rows.Scan(&segment, &count); err != nil {
			return nil, fmt.Errorf("%w: CountApprovedPersonsByDate - scan row: %v", ErrScanRow, err)
		}
		usage[segment] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountApprovedPersonsByDate - rows error: %v", ErrScanRow, err)
	}

	return usage, nil
}

// ListWithFilter получает бронирования с фильтрацией по дате, сегменту и статусу
// Используется операторским списком бронирований
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"booking_date",
		"time_segment",
		"status",
		"primary_person_name",
		"primary_contact",
		sizeSubquery,
		"created_at",
		"updated_at",
	).
		From("bookings")

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": *filter.Date})
	}
	if filter.Segment != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"time_segment": *filter.Segment})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	selectBuilder = selectBuilder.OrderBy("booking_date DESC, created_at DESC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListPersons получает участников бронирования
func (r *Repository) ListPersons(ctx context.Context, bookingID int64) ([]*domain.Person, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"name",
		"identity_number",
		"identity_details",
	).
		From("persons").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListPersons - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPersons - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	persons := make([]*domain.Person, 0)
	for rows.Next() {
		var p domain.Person
		if err := rows.Scan(&p.ID, &p.BookingID, &p.Name, &p.IdentityNumber, &p.IdentityDetails); err != nil {
			return nil, fmt.Errorf("%w: ListPersons - scan person: %v", ErrScanRow, err)
		}
		persons = append(persons, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPersons - rows error: %v", ErrScanRow, err)
	}

	return persons, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var b domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&b.ID,
			&b.BookingDate,
			&b.TimeSegment,
			&b.Status,
			&b.PrimaryPersonName,
			&b.PrimaryContact,
			&b.Size,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		b.CreatedAt = createdAt.Time
		b.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
