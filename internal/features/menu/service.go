package menu

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/keralakitchen/kitchen-backend/internal/apperr"
	"github.com/keralakitchen/kitchen-backend/internal/models"
	"github.com/keralakitchen/kitchen-backend/internal/rules"
	"github.com/keralakitchen/kitchen-backend/internal/store"
	"github.com/keralakitchen/kitchen-backend/internal/validation"
)

var (
	ErrMenuExists        = apperr.Invariant("a menu already exists for that date and slot")
	ErrCutoffPassed      = apperr.Invariant("tomorrow's menu can no longer be changed after %02d:00", rules.CutoffHour)
	ErrNotApproved       = apperr.Invariant("only approved subscribers can customise meals")
	ErrSlotNotSubscribed = apperr.Invariant("you are not subscribed to that delivery slot")
)

type Service struct {
	db         *gorm.DB
	menus      *store.Repository[DailyMenu]
	selections *store.Repository[Selection]
	users      *store.Repository[models.User]
	now        func() time.Time
}

func NewService(db *gorm.DB, now func() time.Time) *Service {
	return &Service{
		db:         db,
		menus:      store.New[DailyMenu](db, "menu"),
		selections: store.New[Selection](db, "menu selection"),
		users:      store.New[models.User](db, "user"),
		now:        now,
	}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (s *Service) Get(id uuid.UUID) (*DailyMenu, error) {
	var m DailyMenu
	if err := s.db.Preload("Items", orderedItems).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("menu")
		}
		return nil, fmt.Errorf("get menu: %w", err)
	}
	return &m, nil
}

// List returns menus on or after from (all menus when from is empty), by date then slot.
func (s *Service) List(from string) ([]DailyMenu, error) {
	q := s.db.Preload("Items", orderedItems).Order("date ASC, time_slot ASC")
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	var out []DailyMenu
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	return out, nil
}

func (s *Service) find(date string, slot models.TimeSlot) (*DailyMenu, error) {
	var m DailyMenu
	err := s.db.Preload("Items", orderedItems).Where("date = ? AND time_slot = ?", date, slot).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find menu: %w", err)
	}
	return &m, nil
}

func buildItems(in []ItemInput) []MenuItem {
	items := make([]MenuItem, len(in))
	for i, it := range in {
		alts := make([]string, 0, len(it.Alternatives))
		for _, a := range it.Alternatives {
			alts = append(alts, strings.TrimSpace(a))
		}
		items[i] = MenuItem{
			Position:     i,
			Name:         strings.TrimSpace(it.Name),
			Description:  it.Description,
			IsOptional:   it.IsOptional,
			Alternatives: alts,
		}
	}
	return items
}

func cutoffOrDefault(req MenuRequest) string {
	if req.CutoffTime != "" {
		return req.CutoffTime
	}
	return rules.DefaultCutoffTime(req.TimeSlot)
}

// Create stores a new menu. There is at most one menu per date and slot.
func (s *Service) Create(req MenuRequest) (*DailyMenu, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	existing, err := s.find(req.Date, req.TimeSlot)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrMenuExists
	}

	m := DailyMenu{
		Date:       req.Date,
		TimeSlot:   req.TimeSlot,
		Items:      buildItems(req.Items),
		Notes:      req.Notes,
		CutoffTime: cutoffOrDefault(req),
	}
	if err := s.menus.Insert(&m); err != nil {
		return nil, err
	}
	slog.Info("menu created", "date", m.Date, "time_slot", m.TimeSlot, "items", len(m.Items))
	return s.Get(m.ID)
}

// Update replaces a menu's fields and its item list. Items keep their IDs by
// position so submitted selections stay attached; choices the new list no
// longer offers are dropped, and moving the menu to another date or slot
// discards the selections made for the old one.
func (s *Service) Update(id uuid.UUID, req MenuRequest) (*DailyMenu, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		menus := s.menus.WithTx(tx)
		prev, err := menus.ByID(id)
		if err != nil {
			return err
		}
		var clash int64
		if err := tx.Model(&DailyMenu{}).
			Where("date = ? AND time_slot = ? AND id <> ?", req.Date, req.TimeSlot, id).
			Count(&clash).Error; err != nil {
			return fmt.Errorf("check menu slot: %w", err)
		}
		if clash > 0 {
			return ErrMenuExists
		}

		if _, err := menus.Update(id, map[string]any{
			"date":        req.Date,
			"time_slot":   req.TimeSlot,
			"notes":       req.Notes,
			"cutoff_time": cutoffOrDefault(req),
		}); err != nil {
			return err
		}
		items, err := replaceItems(tx, id, buildItems(req.Items))
		if err != nil {
			return err
		}
		if prev.Date != req.Date || prev.TimeSlot != req.TimeSlot {
			return dropSelections(tx, prev.Date, prev.TimeSlot)
		}
		return pruneSelections(tx, prev.Date, prev.TimeSlot, items)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(id)
}

// replaceItems writes items over the menu's current ones position by position,
// reusing existing IDs, and removes whatever is left past the new length.
func replaceItems(tx *gorm.DB, menuID uuid.UUID, items []MenuItem) ([]MenuItem, error) {
	var current []MenuItem
	if err := orderedItems(tx).Where("menu_id = ?", menuID).Find(&current).Error; err != nil {
		return nil, fmt.Errorf("load menu items: %w", err)
	}
	for i := range items {
		items[i].MenuID = menuID
		if i < len(current) {
			items[i].ID = current[i].ID
		}
		if err := tx.Save(&items[i]).Error; err != nil {
			return nil, fmt.Errorf("save menu item: %w", err)
		}
	}
	if len(current) > len(items) {
		stale := make([]uuid.UUID, 0, len(current)-len(items))
		for _, it := range current[len(items):] {
			stale = append(stale, it.ID)
		}
		if err := tx.Where("id IN ?", stale).Delete(&MenuItem{}).Error; err != nil {
			return nil, fmt.Errorf("delete menu items: %w", err)
		}
	}
	return items, nil
}

// pruneSelections removes choices that items no longer offer from every
// selection made for date and slot.
func pruneSelections(tx *gorm.DB, date string, slot models.TimeSlot, items []MenuItem) error {
	byID := make(map[uuid.UUID]*MenuItem, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}
	var sels []Selection
	if err := tx.Where("date = ? AND time_slot = ?", date, slot).Find(&sels).Error; err != nil {
		return fmt.Errorf("load menu selections: %w", err)
	}
	pruned := 0
	for _, sel := range sels {
		kept := make([]ItemChoice, 0, len(sel.Choices))
		for _, c := range sel.Choices {
			if item, ok := byID[c.ItemID]; ok && item.IsOptional && item.Offers(c.SelectedOption) {
				kept = append(kept, c)
			}
		}
		if len(kept) == len(sel.Choices) {
			continue
		}
		if err := tx.Model(&Selection{}).Where("id = ?", sel.ID).
			Update("choices", datatypes.JSONSlice[ItemChoice](kept)).Error; err != nil {
			return fmt.Errorf("prune menu selection: %w", err)
		}
		pruned++
	}
	if pruned > 0 {
		slog.Info("menu selections pruned", "date", date, "time_slot", slot, "selections", pruned)
	}
	return nil
}

func dropSelections(tx *gorm.DB, date string, slot models.TimeSlot) error {
	res := tx.Where("date = ? AND time_slot = ?", date, slot).Delete(&Selection{})
	if res.Error != nil {
		return fmt.Errorf("delete menu selections: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		slog.Info("menu selections dropped", "date", date, "time_slot", slot, "selections", res.RowsAffected)
	}
	return nil
}

// Delete removes a menu with its items and the selections made for it.
func (s *Service) Delete(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		m, err := s.menus.WithTx(tx).ByID(id)
		if err != nil {
			return err
		}
		if err := tx.Where("menu_id = ?", id).Delete(&MenuItem{}).Error; err != nil {
			return fmt.Errorf("delete menu items: %w", err)
		}
		if err := dropSelections(tx, m.Date, m.TimeSlot); err != nil {
			return err
		}
		return s.menus.WithTx(tx).Delete(id)
	})
}

// Selections lists every customisation submitted for date.
func (s *Service) Selections(date string) ([]Selection, error) {
	if !validDate(date) {
		return nil, apperr.NewValidationError("date", "must be a date like 2026-01-31")
	}
	return s.selections.Where("date", date)
}

func validDate(date string) bool {
	_, err := time.Parse(rules.DateLayout, date)
	return err == nil
}

// Menus returns today's and tomorrow's menus in the kitchen's time zone,
// together with the user's own selections for them.
func (s *Service) Menus(userID uuid.UUID) (*MenusResponse, error) {
	now := s.now()
	today, err := s.day(userID, rules.Today(now))
	if err != nil {
		return nil, err
	}
	tomorrow, err := s.day(userID, rules.Tomorrow(now))
	if err != nil {
		return nil, err
	}
	return &MenusResponse{
		Today:           *today,
		Tomorrow:        *tomorrow,
		CanEditTomorrow: rules.CanEditNextDay(now),
		CutoffHour:      rules.CutoffHour,
	}, nil
}

func (s *Service) day(userID uuid.UUID, date string) (*DayView, error) {
	view := &DayView{Date: date}
	for _, slot := range []models.TimeSlot{models.SlotAfternoon, models.SlotNight} {
		m, err := s.find(date, slot)
		if err != nil {
			return nil, err
		}
		if m == nil {
			continue
		}
		sv := &SlotView{Menu: m}
		sel, err := s.selections.First(map[string]any{"user_id": userID, "date": date, "time_slot": slot})
		if err == nil {
			sv.Selection = sel
		} else if !errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		if slot == models.SlotAfternoon {
			view.Afternoon = sv
		} else {
			view.Night = sv
		}
	}
	return view, nil
}

func subscribedTo(pref models.TimePreference, slot models.TimeSlot) bool {
	return pref == models.PreferBoth || string(pref) == string(slot)
}

// SubmitSelection stores the user's choices for tomorrow's menu in one slot,
// replacing any earlier submission. It is refused after the daily cutoff.
func (s *Service) SubmitSelection(userID uuid.UUID, req SelectionRequest) (*Selection, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	now := s.now()
	if !rules.CanEditNextDay(now) {
		return nil, ErrCutoffPassed
	}

	u, err := s.users.ByID(userID)
	if err != nil {
		return nil, err
	}
	if u.Status != models.RegistrationApproved {
		return nil, ErrNotApproved
	}
	if !subscribedTo(u.TimePreference, req.TimeSlot) {
		return nil, ErrSlotNotSubscribed
	}

	date := rules.Tomorrow(now)
	m, err := s.find(date, req.TimeSlot)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperr.NotFound("menu")
	}

	choices, err := checkChoices(m, req.Selections)
	if err != nil {
		return nil, err
	}

	sel := Selection{
		UserID:      u.ID,
		UserName:    u.Name,
		Date:        date,
		TimeSlot:    req.TimeSlot,
		Choices:     choices,
		SpecialNote: strings.TrimSpace(req.SpecialNote),
		SubmittedAt: now.UTC(),
	}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}, {Name: "time_slot"}},
		DoUpdates: clause.AssignmentColumns([]string{"choices", "special_note", "submitted_at", "updated_at", "user_name"}),
	}).Create(&sel).Error
	if err != nil {
		return nil, fmt.Errorf("save menu selection: %w", err)
	}
	return s.selections.First(map[string]any{"user_id": u.ID, "date": date, "time_slot": req.TimeSlot})
}

// checkChoices allows one choice per optional item, drawn from the item and its alternatives.
func checkChoices(m *DailyMenu, in []ChoiceInput) ([]ItemChoice, error) {
	byID := make(map[uuid.UUID]*MenuItem, len(m.Items))
	for i := range m.Items {
		byID[m.Items[i].ID] = &m.Items[i]
	}

	verr := &apperr.ValidationError{Fields: map[string]string{}}
	seen := make(map[uuid.UUID]bool, len(in))
	out := make([]ItemChoice, 0, len(in))
	for i, c := range in {
		field := fmt.Sprintf("selections[%d]", i)
		item, ok := byID[c.ItemID]
		switch {
		case !ok:
			verr.Fields[field+".item_id"] = "is not on this menu"
		case !item.IsOptional:
			verr.Fields[field+".item_id"] = fmt.Sprintf("%s cannot be changed", item.Name)
		case seen[c.ItemID]:
			verr.Fields[field+".item_id"] = "is chosen more than once"
		case !item.Offers(c.SelectedOption):
			verr.Fields[field+".selected_option"] = fmt.Sprintf("is not offered for %s", item.Name)
		default:
			seen[c.ItemID] = true
			out = append(out, ItemChoice{ItemID: c.ItemID, SelectedOption: c.SelectedOption})
		}
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return out, nil
}
