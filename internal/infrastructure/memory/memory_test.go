package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Brewlog-api/internal/domain"
	"github.com/jhoicas/Brewlog-api/internal/domain/entity"
	"github.com/jhoicas/Brewlog-api/internal/domain/repository"
	"github.com/jhoicas/Brewlog-api/internal/infrastructure/memory"
)

var t0 = time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

func day(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }

func ptr[T any](v T) *T { return &v }

func seedBrew(t *testing.T, s *memory.Store, userID string) (*entity.Bean, *entity.RoastDate, *entity.Brew) {
	t.Helper()
	ctx := context.Background()
	bean := &entity.Bean{ID: userID + "-bean", UserID: userID, Name: "Konga", CreatedAt: t0, UpdatedAt: t0}
	require.NoError(t, s.Beans().Create(ctx, bean))
	rd := &entity.RoastDate{ID: userID + "-rd", UserID: userID, BeanID: bean.ID, Date: day(1), CreatedAt: t0}
	require.NoError(t, s.RoastDates().Create(ctx, rd))
	g := &entity.Grinder{ID: userID + "-g", UserID: userID, Name: "Niche", CreatedAt: t0}
	require.NoError(t, s.Grinders().Create(ctx, g))
	b := &entity.Brewer{ID: userID + "-b", UserID: userID, Name: "V60", CreatedAt: t0}
	require.NoError(t, s.Brewers().Create(ctx, b))

	brew := &entity.Brew{
		ID: userID + "-brew", UserID: userID,
		BeanID: &bean.ID, RoastDateID: &rd.ID, RoastDate: ptr(rd.Date),
		GrinderID: &g.ID, BrewerID: &b.ID,
		BrewedAt: day(10), Dose: decimal.NewFromInt(18), Yield: decimal.NewFromInt(36),
		CreatedAt: t0, UpdatedAt: t0,
	}
	require.NoError(t, s.Brews().Create(ctx, brew))
	return bean, rd, brew
}

// ─── Pertenencia ──────────────────────────────────────────────────────────────

func TestStore_AisladoPorUsuario(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	bean, _, brew := seedBrew(t, s, "u1")

	got, err := s.Beans().GetByID(ctx, "u2", bean.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	list, err := s.Brews().ListByUser(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, s.Brews().Delete(ctx, "u2", brew.ID), domain.ErrNotFound)
	other := *brew
	other.UserID = "u2"
	assert.ErrorIs(t, s.Brews().Update(ctx, &other), domain.ErrNotFound)
}

func TestStore_LecturasDevuelvenCopias(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	bean, _, _ := seedBrew(t, s, "u1")

	got, err := s.Beans().GetByID(ctx, "u1", bean.ID)
	require.NoError(t, err)
	got.Name = "mutado"
	got.RoastDates[0].Date = day(20)

	again, err := s.Beans().GetByID(ctx, "u1", bean.ID)
	require.NoError(t, err)
	assert.Equal(t, "Konga", again.Name)
	assert.Equal(t, day(1), again.RoastDates[0].Date)
}

// ─── Borrados en cascada ──────────────────────────────────────────────────────

func TestRoastDate_BorrarConservaLaCopiaDelBrew(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	_, rd, brew := seedBrew(t, s, "u1")

	require.NoError(t, s.RoastDates().Delete(ctx, "u1", rd.ID))

	got, err := s.Brews().GetByID(ctx, "u1", brew.ID)
	require.NoError(t, err)
	assert.Nil(t, got.RoastDateID)
	require.NotNil(t, got.RoastDate)
	assert.Equal(t, day(1), *got.RoastDate)
}

func TestBean_BorrarEliminaFechasYSueltaBrews(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	bean, rd, brew := seedBrew(t, s, "u1")

	require.NoError(t, s.Beans().Delete(ctx, "u1", bean.ID))

	gone, err := s.RoastDates().GetByID(ctx, "u1", rd.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	got, err := s.Brews().GetByID(ctx, "u1", brew.ID)
	require.NoError(t, err)
	assert.Nil(t, got.BeanID)
	assert.Nil(t, got.Bean)
	assert.Nil(t, got.RoastDateID)
	assert.NotNil(t, got.RoastDate)
	require.NotNil(t, got.Grinder)
	assert.Equal(t, "Niche", got.Grinder.Name)
}

func TestRoastery_BorrarSueltaBeans(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	r := &entity.Roastery{ID: "r1", UserID: "u1", Name: "Nomad", CreatedAt: t0}
	require.NoError(t, s.Roasteries().Create(ctx, r))
	bean := &entity.Bean{ID: "b1", UserID: "u1", RoasteryID: &r.ID, Name: "Konga", CreatedAt: t0}
	require.NoError(t, s.Beans().Create(ctx, bean))

	require.NoError(t, s.Roasteries().Delete(ctx, "u1", r.ID))

	got, err := s.Beans().GetByID(ctx, "u1", bean.ID)
	require.NoError(t, err)
	assert.Nil(t, got.RoasteryID)
}

// ─── Orden ────────────────────────────────────────────────────────────────────

func TestBrew_SetAISuggestionsSoloTocaLasSugerencias(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	_, _, brew := seedBrew(t, s, "u1")

	edited := *brew
	edited.Notes = "más fino"
	edited.AISuggestions = "no debe guardarse"
	require.NoError(t, s.Brews().Update(ctx, &edited))

	at := t0.Add(time.Hour)
	require.NoError(t, s.Brews().SetAISuggestions(ctx, "u1", brew.ID, "Baja la dosis.", at))
	err := s.Brews().SetAISuggestions(ctx, "u2", brew.ID, "ajeno", at)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := s.Brews().GetByID(ctx, "u1", brew.ID)
	require.NoError(t, err)
	assert.Equal(t, "más fino", got.Notes)
	assert.Equal(t, "Baja la dosis.", got.AISuggestions)
	assert.True(t, got.UpdatedAt.Equal(at))
}

func TestGrinders_MasRecientesPrimero(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Grinders().Create(ctx, &entity.Grinder{ID: "a", UserID: "u1", CreatedAt: t0}))
	require.NoError(t, s.Grinders().Create(ctx, &entity.Grinder{ID: "b", UserID: "u1", CreatedAt: t0.Add(time.Hour)}))
	require.NoError(t, s.Grinders().Create(ctx, &entity.Grinder{ID: "c", UserID: "u1", CreatedAt: t0}))

	list, err := s.Grinders().ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestRoastDates_FechaDescendente(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	bean := &entity.Bean{ID: "b1", UserID: "u1", CreatedAt: t0}
	require.NoError(t, s.Beans().Create(ctx, bean))
	for i, d := range []int{3, 12, 7} {
		rd := &entity.RoastDate{ID: string(rune('a' + i)), UserID: "u1", BeanID: bean.ID, Date: day(d), CreatedAt: t0}
		require.NoError(t, s.RoastDates().Create(ctx, rd))
	}

	list, err := s.RoastDates().ListByBean(ctx, "u1", bean.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []time.Time{day(12), day(7), day(3)}, []time.Time{list[0].Date, list[1].Date, list[2].Date})
}

// ─── Usuarios ─────────────────────────────────────────────────────────────────

func TestUsers_EmailUnicoSinDistinguirMayusculas(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "u1", Email: "ana@brew.co"}))

	err := s.Users().Create(ctx, &entity.User{ID: "u2", Email: "ANA@brew.co"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	got, err := s.Users().GetByEmail(ctx, "ana@brew.co")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.ID)
}

// ─── Transacción y fallos ─────────────────────────────────────────────────────

func TestTxRunner_ErrorDescartaTodo(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := memory.NewTxRunner(s).RunBean(ctx, func(beans repository.BeanRepository, roastDates repository.RoastDateRepository) error {
		bean := &entity.Bean{ID: "b1", UserID: "u1", CreatedAt: t0}
		if err := beans.Create(ctx, bean); err != nil {
			return err
		}
		if err := roastDates.Create(ctx, &entity.RoastDate{ID: "rd1", UserID: "u1", BeanID: "b1", Date: day(1)}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	list, err := s.Beans().ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTxRunner_ConfirmaAlTerminar(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()

	err := memory.NewTxRunner(s).RunBean(ctx, func(beans repository.BeanRepository, roastDates repository.RoastDateRepository) error {
		if err := beans.Create(ctx, &entity.Bean{ID: "b1", UserID: "u1", CreatedAt: t0}); err != nil {
			return err
		}
		return roastDates.Create(ctx, &entity.RoastDate{ID: "rd1", UserID: "u1", BeanID: "b1", Date: day(1)})
	})
	require.NoError(t, err)

	got, err := s.Beans().GetByID(ctx, "u1", "b1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.RoastDates, 1)
}

func TestFault_AbortaSinTocarElEstado(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	s.SetFault(func(op string) error {
		if op == "grinders.create" {
			return domain.ErrStoreUnavailable
		}
		return nil
	})

	err := s.Grinders().Create(ctx, &entity.Grinder{ID: "g1", UserID: "u1"})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	s.SetFault(nil)
	list, err := s.Grinders().ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}
