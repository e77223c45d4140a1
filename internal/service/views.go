package service

import (
	"time"

	"SamuraiArchive/internal/model"
)

// Ref 关联实体的精简表示
type Ref struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

type ClanView struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Founder     *string   `json:"founder"`
	Image       *string   `json:"image"`
	Slug        string    `json:"slug"`
	Samourais   []Ref     `json:"samourais"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type LocationView struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Region      *string   `json:"region"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	Description string    `json:"description"`
	Image       *string   `json:"image"`
	Slug        string    `json:"slug"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type WeaponView struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Type        *string   `json:"type"`
	Description string    `json:"description"`
	Image       *string   `json:"image"`
	Slug        string    `json:"slug"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type StyleView struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Founder     *string   `json:"founder"`
	Image       *string   `json:"image"`
	Slug        string    `json:"slug"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BattleView 日期统一输出为 YYYY-MM-DD
type BattleView struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	SourceURL   *string   `json:"source_url"`
	Image       *string   `json:"image"`
	Location    *Ref      `json:"location"`
	WinnerClan  *Ref      `json:"winner_clan"`
	Samourais   []Ref     `json:"samourais"`
	Slug        string    `json:"slug"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SamouraiView struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	BirthDate   *string   `json:"birth_date"`
	DeathDate   *string   `json:"death_date"`
	Description string    `json:"description"`
	Image       *string   `json:"image"`
	Clan        *Ref      `json:"clan"`
	Weapons     []Ref     `json:"weapons"`
	Styles      []Ref     `json:"styles"`
	Battles     []Ref     `json:"battles"`
	Slug        string    `json:"slug"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type TimelineView struct {
	ID          uint64             `json:"id"`
	Year        int                `json:"year"`
	Date        string             `json:"date"`
	Title       string             `json:"title"`
	Type        model.TimelineType `json:"type"`
	Description string             `json:"description"`
	BattleID    *uint64            `json:"battle_id"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// UserView 不包含密码哈希
type UserView struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

type FavoriteView struct {
	ID         uint64             `json:"id"`
	EntityType model.FavoriteType `json:"entity_type"`
	EntityID   uint64             `json:"entity_id"`
	CreatedAt  time.Time          `json:"created_at"`
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatDate(*t)
	return &s
}

func refs[T any](list []*T, ref func(*T) Ref) []Ref {
	out := make([]Ref, 0, len(list))
	for _, item := range list {
		out = append(out, ref(item))
	}
	return out
}

func clanRef(c *model.Clan) Ref { return Ref{ID: c.ID, Name: c.Name, Slug: c.Slug} }
func locationRef(l *model.Location) Ref { return Ref{ID: l.ID, Name: l.Name, Slug: l.Slug} }
func weaponRef(w *model.Weapon) Ref { return Ref{ID: w.ID, Name: w.Name, Slug: w.Slug} }
func styleRef(s *model.Style) Ref { return Ref{ID: s.ID, Name: s.Name, Slug: s.Slug} }
func battleRef(b *model.Battle) Ref { return Ref{ID: b.ID, Name: b.Name, Slug: b.Slug} }
func samouraiRef(s *model.Samourai) Ref { return Ref{ID: s.ID, Name: s.Name, Slug: s.Slug} }

func optionalRef[T any](v *T, ref func(*T) Ref) *Ref {
	if v == nil {
		return nil
	}
	r := ref(v)
	return &r
}

func newClanView(c *model.Clan) ClanView {
	return ClanView{
		ID: c.ID, Name: c.Name, Description: c.Description, Founder: c.Founder, Image: c.Image,
		Slug: c.Slug, Samourais: refs(c.Samourais, samouraiRef),
		CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func newLocationView(l *model.Location) LocationView {
	return LocationView{
		ID: l.ID, Name: l.Name, Region: l.Region, Latitude: l.Latitude, Longitude: l.Longitude,
		Description: l.Description, Image: l.Image, Slug: l.Slug,
		CreatedAt: l.CreatedAt, UpdatedAt: l.UpdatedAt,
	}
}

func newWeaponView(w *model.Weapon) WeaponView {
	return WeaponView{
		ID: w.ID, Name: w.Name, Type: w.Type, Description: w.Description, Image: w.Image,
		Slug: w.Slug, CreatedAt: w.CreatedAt, UpdatedAt: w.UpdatedAt,
	}
}

func newStyleView(s *model.Style) StyleView {
	return StyleView{
		ID: s.ID, Name: s.Name, Description: s.Description, Founder: s.Founder, Image: s.Image,
		Slug: s.Slug, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt,
	}
}

func newBattleView(b *model.Battle) BattleView {
	return BattleView{
		ID: b.ID, Name: b.Name, Date: formatDate(b.Date), Description: b.Description,
		SourceURL: b.SourceURL, Image: b.Image,
		Location:   optionalRef(b.Location, locationRef),
		WinnerClan: optionalRef(b.WinnerClan, clanRef),
		Samourais:  refs(b.Samourais, samouraiRef),
		Slug:       b.Slug, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt,
	}
}

func newSamouraiView(s *model.Samourai) SamouraiView {
	return SamouraiView{
		ID: s.ID, Name: s.Name,
		BirthDate: formatDatePtr(s.BirthDate), DeathDate: formatDatePtr(s.DeathDate),
		Description: s.Description, Image: s.Image,
		Clan:    optionalRef(s.Clan, clanRef),
		Weapons: refs(s.Weapons, weaponRef),
		Styles:  refs(s.Styles, styleRef),
		Battles: refs(s.Battles, battleRef),
		Slug:    s.Slug, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt,
	}
}

func newTimelineView(t *model.Timeline) TimelineView {
	return TimelineView{
		ID: t.ID, Year: t.Year, Date: formatDate(t.Date), Title: t.Title, Type: t.Type,
		Description: t.Description, BattleID: t.BattleID,
		CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt,
	}
}

func newUserView(u *model.User) UserView {
	return UserView{ID: u.ID, Email: u.Email, Username: u.Username, Roles: u.RoleList(), CreatedAt: u.CreatedAt}
}

func newFavoriteView(f *model.Favorite) FavoriteView {
	return FavoriteView{ID: f.ID, EntityType: f.EntityType, EntityID: f.EntityID, CreatedAt: f.CreatedAt}
}

func mapViews[T any, V any](list []*T, view func(*T) V) []V {
	out := make([]V, 0, len(list))
	for _, item := range list {
		out = append(out, view(item))
	}
	return out
}
