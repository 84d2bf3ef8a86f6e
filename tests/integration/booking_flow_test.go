//go:build integration

package integration

import (
	"sync"
	"testing"
	"time"

	"github.com/odwoodruff/pet-training-service/internal/models"
	"github.com/odwoodruff/pet-training-service/internal/repository"
	"github.com/odwoodruff/pet-training-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServices() (service.AuthService, service.PetService, service.ClassService, service.BookingService, service.TrainerService) {
	customers := repository.NewCustomerRepository(testDB)
	staff := repository.NewStaffRepository(testDB)
	sessions := repository.NewAuthSessionRepository(testDB)
	pets := repository.NewPetRepository(testDB)
	classes := repository.NewClassRepository(testDB)
	bookings := repository.NewBookingRepository(testDB)

	return service.NewAuthService(customers, staff, sessions, time.Hour),
		service.NewPetService(pets, customers),
		service.NewClassService(classes),
		service.NewBookingService(bookings, classes, pets),
		service.NewTrainerService(staff, classes, bookings)
}

func registerTrainer(t *testing.T, auth service.AuthService, email string) *service.Profile {
	t.Helper()
	profile, err := auth.Register(t.Context(), service.RegisterInput{
		FirstName:   "Tess",
		LastName:    "Handler",
		Email:       email,
		Password:    "trainer-pw",
		Role:        service.RoleTrainer,
		HourlyRate:  60,
		Specialties: "Obedience",
	})
	require.NoError(t, err)
	require.NotNil(t, profile.EmployeeID)
	return profile
}

func createClass(t *testing.T, classes service.ClassService, trainerID uint, name string, price float64, startsAt time.Time) *models.Class {
	t.Helper()
	class := &models.Class{
		Name:      name,
		Type:      "Obedience",
		StartsAt:  startsAt,
		EndsAt:    startsAt.Add(time.Hour),
		Price:     price,
		Capacity:  8,
		TrainerID: trainerID,
	}
	require.NoError(t, classes.Create(t.Context(), class))
	return class
}

// Full customer journey against a real database: register, log in, add a
// pet, book a class, then cancel the booking twice.
func TestBookingFlow(t *testing.T) {
	cleanTables()
	auth, petsSvc, classesSvc, bookingsSvc, _ := newServices()
	ctx := t.Context()

	trainer := registerTrainer(t, auth, "tess@example.com")

	customer, err := auth.Register(ctx, service.RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "secret-pw",
	})
	require.NoError(t, err)

	// Duplicate registration is rejected and leaves no second row behind.
	_, err = auth.Register(ctx, service.RegisterInput{
		FirstName: "Ada",
		Email:     "ada@example.com",
		Password:  "another-pw",
	})
	assert.ErrorIs(t, err, service.ErrEmailTaken)

	var customerCount int64
	testDB.Model(&models.Customer{}).Where("email = ?", "ada@example.com").Count(&customerCount)
	assert.Equal(t, int64(1), customerCount)

	// Login round trip.
	_, session, err := auth.Login(ctx, "ada@example.com", "secret-pw")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)

	_, _, err = auth.Login(ctx, "ada@example.com", "wrong-pw")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	pet := &models.Pet{
		Name:       "Rex",
		Species:    "Dog",
		CustomerID: customer.Customer.ID,
	}
	require.NoError(t, petsSvc.Create(ctx, pet))

	class := createClass(t, classesSvc, *trainer.EmployeeID, "Puppy Basics", 50, time.Now().Add(48*time.Hour))

	booking := &models.Booking{
		CustomerID: customer.Customer.ID,
		PetID:      pet.ID,
		ClassID:    class.ID,
	}
	require.NoError(t, bookingsSvc.Create(ctx, booking))
	assert.Equal(t, models.StatusPending, booking.Status)
	assert.Equal(t, class.StartsAt.Unix(), booking.SessionAt.Unix())

	// Cancelling twice lands in the same state both times.
	cancelled, err := bookingsSvc.Cancel(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	cancelledAgain, err := bookingsSvc.Cancel(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelledAgain.Status)

	var stored models.Booking
	require.NoError(t, testDB.First(&stored, booking.ID).Error)
	assert.Equal(t, models.StatusCancelled, stored.Status)
}

// A completed or cancelled booking cannot move again, and a pending one
// cannot skip straight to completed.
func TestStatusTransitionsEnforced(t *testing.T) {
	cleanTables()
	auth, petsSvc, classesSvc, bookingsSvc, _ := newServices()
	ctx := t.Context()

	trainer := registerTrainer(t, auth, "tess@example.com")
	customer, err := auth.Register(ctx, service.RegisterInput{
		FirstName: "Ada", Email: "ada@example.com", Password: "secret-pw",
	})
	require.NoError(t, err)

	pet := &models.Pet{Name: "Rex", CustomerID: customer.Customer.ID}
	require.NoError(t, petsSvc.Create(ctx, pet))
	class := createClass(t, classesSvc, *trainer.EmployeeID, "Puppy Basics", 50, time.Now().Add(48*time.Hour))

	booking := &models.Booking{CustomerID: customer.Customer.ID, PetID: pet.ID, ClassID: class.ID}
	require.NoError(t, bookingsSvc.Create(ctx, booking))

	_, err = bookingsSvc.UpdateStatus(ctx, booking.ID, models.StatusCompleted, nil)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)

	_, err = bookingsSvc.Confirm(ctx, booking.ID)
	require.NoError(t, err)
	_, err = bookingsSvc.UpdateStatus(ctx, booking.ID, models.StatusCompleted, nil)
	require.NoError(t, err)

	_, err = bookingsSvc.Cancel(ctx, booking.ID)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
}

// Concurrent status updates on the same booking must serialize inside the
// transaction: exactly one of cancel/confirm wins from Pending, and the
// stored row always holds a legal status.
func TestConcurrentStatusUpdates(t *testing.T) {
	cleanTables()
	auth, petsSvc, classesSvc, bookingsSvc, _ := newServices()
	ctx := t.Context()

	trainer := registerTrainer(t, auth, "tess@example.com")
	customer, err := auth.Register(ctx, service.RegisterInput{
		FirstName: "Ada", Email: "ada@example.com", Password: "secret-pw",
	})
	require.NoError(t, err)

	pet := &models.Pet{Name: "Rex", CustomerID: customer.Customer.ID}
	require.NoError(t, petsSvc.Create(ctx, pet))
	class := createClass(t, classesSvc, *trainer.EmployeeID, "Puppy Basics", 50, time.Now().Add(48*time.Hour))

	booking := &models.Booking{CustomerID: customer.Customer.ID, PetID: pet.ID, ClassID: class.ID}
	require.NoError(t, bookingsSvc.Create(ctx, booking))

	attempts := 10
	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		target := models.StatusCancelled
		if i%2 == 0 {
			target = models.StatusConfirmed
		}
		go func(status models.BookingStatus) {
			defer wg.Done()
			// Losing goroutines hit ErrInvalidTransition, which is fine.
			_, _ = bookingsSvc.UpdateStatus(ctx, booking.ID, status, nil)
		}(target)
	}
	wg.Wait()

	var stored models.Booking
	require.NoError(t, testDB.First(&stored, booking.ID).Error)
	assert.True(t, stored.Status.Valid(), "stored status %q must be legal", stored.Status)
	assert.NotEqual(t, models.StatusPending, stored.Status)
}

// Sorting the catalog by price in both directions yields exact reversals,
// and search matches are case-insensitive.
func TestClassCatalogQueries(t *testing.T) {
	cleanTables()
	auth, _, classesSvc, _, _ := newServices()
	ctx := t.Context()

	trainer := registerTrainer(t, auth, "tess@example.com")
	base := time.Now().Add(24 * time.Hour)
	createClass(t, classesSvc, *trainer.EmployeeID, "Puppy Basics", 50, base)
	createClass(t, classesSvc, *trainer.EmployeeID, "Agility Advanced", 80, base.Add(time.Hour))
	createClass(t, classesSvc, *trainer.EmployeeID, "Scent Work", 65, base.Add(2*time.Hour))

	asc, err := classesSvc.List(ctx, repository.ClassQuery{SortBy: "price", SortOrder: "asc"})
	require.NoError(t, err)
	desc, err := classesSvc.List(ctx, repository.ClassQuery{SortBy: "price", SortOrder: "desc"})
	require.NoError(t, err)
	require.Len(t, asc, 3)
	require.Len(t, desc, 3)
	for i := range asc {
		assert.Equal(t, asc[i].ID, desc[len(desc)-1-i].ID)
	}

	found, err := classesSvc.List(ctx, repository.ClassQuery{Search: "AGILITY"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Agility Advanced", found[0].Name)

	byTrainer, err := classesSvc.List(ctx, repository.ClassQuery{Search: "tess"})
	require.NoError(t, err)
	assert.Len(t, byTrainer, 3)
}

// A trainer's upcoming view hides past sessions and cancelled bookings.
func TestTrainerUpcomingBookings(t *testing.T) {
	cleanTables()
	auth, petsSvc, classesSvc, bookingsSvc, trainersSvc := newServices()
	ctx := t.Context()

	trainer := registerTrainer(t, auth, "tess@example.com")
	customer, err := auth.Register(ctx, service.RegisterInput{
		FirstName: "Ada", Email: "ada@example.com", Password: "secret-pw",
	})
	require.NoError(t, err)
	pet := &models.Pet{Name: "Rex", CustomerID: customer.Customer.ID}
	require.NoError(t, petsSvc.Create(ctx, pet))

	past := createClass(t, classesSvc, *trainer.EmployeeID, "Old Class", 40, time.Now().Add(-48*time.Hour))
	future := createClass(t, classesSvc, *trainer.EmployeeID, "New Class", 40, time.Now().Add(48*time.Hour))

	mk := func(classID uint) *models.Booking {
		b := &models.Booking{CustomerID: customer.Customer.ID, PetID: pet.ID, ClassID: classID}
		require.NoError(t, bookingsSvc.Create(ctx, b))
		return b
	}
	mk(past.ID)
	upcoming := mk(future.ID)
	cancelled := mk(future.ID)
	_, err = bookingsSvc.Cancel(ctx, cancelled.ID)
	require.NoError(t, err)

	visible, err := trainersSvc.UpcomingBookings(ctx, *trainer.EmployeeID)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, upcoming.ID, visible[0].ID)
}

// Deleting a customer removes their pets, bookings, and sessions in one
// transaction.
func TestDeleteCustomerCascades(t *testing.T) {
	cleanTables()
	auth, petsSvc, classesSvc, bookingsSvc, _ := newServices()
	ctx := t.Context()

	trainer := registerTrainer(t, auth, "tess@example.com")
	customer, err := auth.Register(ctx, service.RegisterInput{
		FirstName: "Ada", Email: "ada@example.com", Password: "secret-pw",
	})
	require.NoError(t, err)
	_, session, err := auth.Login(ctx, "ada@example.com", "secret-pw")
	require.NoError(t, err)

	pet := &models.Pet{Name: "Rex", CustomerID: customer.Customer.ID}
	require.NoError(t, petsSvc.Create(ctx, pet))
	class := createClass(t, classesSvc, *trainer.EmployeeID, "Puppy Basics", 50, time.Now().Add(48*time.Hour))
	booking := &models.Booking{CustomerID: customer.Customer.ID, PetID: pet.ID, ClassID: class.ID}
	require.NoError(t, bookingsSvc.Create(ctx, booking))

	require.NoError(t, auth.DeleteProfile(ctx, customer.Customer.ID))

	var count int64
	testDB.Model(&models.Customer{}).Where("id = ?", customer.Customer.ID).Count(&count)
	assert.Zero(t, count, "customer row should be gone")
	testDB.Model(&models.Pet{}).Where("customer_id = ?", customer.Customer.ID).Count(&count)
	assert.Zero(t, count, "pets should be gone")
	testDB.Model(&models.Booking{}).Where("customer_id = ?", customer.Customer.ID).Count(&count)
	assert.Zero(t, count, "bookings should be gone")
	testDB.Model(&models.AuthSession{}).Where("token = ?", session.Token).Count(&count)
	assert.Zero(t, count, "sessions should be revoked")

	_, err = auth.GetProfile(ctx, customer.Customer.ID)
	assert.ErrorIs(t, err, service.ErrCustomerNotFound)
}
