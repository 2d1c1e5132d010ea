package domain

import (
	"fmt"
	"time"
)

// Owner снимок данных создателя бронирования на момент создания/обновления.
// Email и DisplayName не перечитываются у провайдера идентификации.
type Owner struct {
	UserID      string
	Email       string
	DisplayName string
}

// Reservation represents a room booking for a set of slots inside one shift
type Reservation struct {
	ID    int64
	Owner Owner

	Floor     Floor
	Room      Room
	Date      time.Time
	Shift     Shift
	TimeSlots []Slot

	Reason            string
	ResponsiblePerson string
	Participants      int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Key returns the (floor, room, date, shift) tuple that scopes conflicts
func (r *Reservation) Key() Key {
	return Key{
		Floor: r.Floor,
		Room:  r.Room,
		Date:  NormalizeDate(r.Date),
		Shift: r.Shift,
	}
}

// IsOwnedBy returns true if the user created the reservation
func (r *Reservation) IsOwnedBy(userID string) bool {
	return userID != "" && r.Owner.UserID == userID
}

// Clone возвращает глубокую копию бронирования
func (r *Reservation) Clone() *Reservation {
	c := *r
	c.TimeSlots = make([]Slot, len(r.TimeSlots))
	copy(c.TimeSlots, r.TimeSlots)
	return &c
}

// Key ключ конфликта: в пределах одного ключа слоты бронирований не пересекаются
type Key struct {
	Floor Floor
	Room  Room
	Date  time.Time
	Shift Shift
}

// String используется как ключ блокировки и в логах
func (k Key) String() string {
	return fmt.Sprintf("reservation:%d:%d:%s:%s", k.Floor, k.Room, k.Date.Format(DateFormat), k.Shift)
}

// Equal сравнивает ключи без учета времени суток и часового пояса даты
func (k Key) Equal(other Key) bool {
	return k.Floor == other.Floor &&
		k.Room == other.Room &&
		k.Shift == other.Shift &&
		SameDate(k.Date, other.Date)
}

// ReservationFilter фильтр для выборки бронирований, любое поле опционально
type ReservationFilter struct {
	Date  *time.Time
	Floor *Floor
	Room  *Room
	Shift *Shift
}

// FilterByKey строит фильтр, совпадающий ровно с одним ключом
func FilterByKey(k Key) ReservationFilter {
	date := k.Date
	floor := k.Floor
	room := k.Room
	shift := k.Shift
	return ReservationFilter{Date: &date, Floor: &floor, Room: &room, Shift: &shift}
}

// Matches returns true if the reservation satisfies every set field of the filter
func (f ReservationFilter) Matches(r *Reservation) bool {
	if f.Date != nil && !SameDate(*f.Date, r.Date) {
		return false
	}
	if f.Floor != nil && *f.Floor != r.Floor {
		return false
	}
	if f.Room != nil && *f.Room != r.Room {
		return false
	}
	if f.Shift != nil && *f.Shift != r.Shift {
		return false
	}
	return true
}

// NormalizeDate отбрасывает время и часовой пояс: дата бронирования не имеет зоны
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, err
	}
	return NormalizeDate(t), nil
}

// SameDate проверяет, что две даты относятся к одному и тому же дню
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
