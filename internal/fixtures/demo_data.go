package fixtures

import (
	"fmt"

	"github.com/Jevon1999/api-presensi/internal/domain/member"
	"github.com/Jevon1999/api-presensi/internal/domain/office"
	"github.com/Jevon1999/api-presensi/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

// ==========================================
// DEMO OFFICES
// ==========================================

const (
	OfficeJakartaID  = "01950000-0000-7000-8000-000000000001"
	OfficeBandungID  = "01950000-0000-7000-8000-000000000002"
	OfficeSurabayaID = "01950000-0000-7000-8000-000000000003"

	// HeadquartersLat and HeadquartersLon are the Jakarta geofence center.
	HeadquartersLat = -6.200000
	HeadquartersLon = 106.816666
)

// Dataset is everything the memory driver needs to serve requests.
type Dataset struct {
	Offices   []office.Office
	Locations []office.Location
	Members   []member.Member
	Users     []user.User
}

func DemoOffices() []office.Office {
	return []office.Office{
		{ID: OfficeJakartaID, Code: "HQ001", Name: "Kantor Pusat Jakarta"},
		{ID: OfficeBandungID, Code: "BDG001", Name: "Kantor Cabang Bandung"},
		{ID: OfficeSurabayaID, Code: "SBY001", Name: "Kantor Cabang Surabaya"},
	}
}

func DemoLocations() []office.Location {
	jakarta := office.NewLocation(OfficeJakartaID, "Gedung Utama", HeadquartersLat, HeadquartersLon, 100)
	jakarta.Address = "Jl. Sudirman No. 123, Jakarta Pusat"

	bandung := office.NewLocation(OfficeBandungID, "Gedung Utama", -6.921478, 107.607140, 150)
	bandung.Address = "Jl. Asia Afrika No. 45, Bandung"

	surabaya := office.NewLocation(OfficeSurabayaID, "Gedung Utama", -7.250445, 112.768845, 100)
	surabaya.Address = "Jl. Tunjungan No. 88, Surabaya"

	return []office.Location{jakarta, bandung, surabaya}
}

// ==========================================
// DEMO MEMBERS
// ==========================================

func DemoMembers() []member.Member {
	return []member.Member{
		{Phone: "6281234567890", Name: "Budi Santoso", OfficeID: OfficeJakartaID, Active: true},
		{Phone: "6281234567891", Name: "Siti Rahayu", OfficeID: OfficeJakartaID, Active: true},
		{Phone: "6282234567890", Name: "Andi Wijaya", OfficeID: OfficeBandungID, Active: true},
		{Phone: "6282234567891", Name: "Dewi Lestari", OfficeID: OfficeBandungID, Active: true},
		{Phone: "6283134567890", Name: "Rudi Hartono", OfficeID: OfficeSurabayaID, Active: true},
		{Phone: "6281999999999", Name: "Member Nonaktif", OfficeID: OfficeJakartaID, Active: false},
	}
}

// DemoAdmin builds the dashboard administrator with a bcrypt hash of password.
func DemoAdmin(email, password string) (user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to hash admin password: %w", err)
	}
	return user.User{
		Name:         "Admin",
		Email:        email,
		PasswordHash: string(hash),
		Role:         user.RoleAdmin,
	}, nil
}

// Demo assembles the full dataset.
func Demo(adminEmail, adminPassword string) (Dataset, error) {
	admin, err := DemoAdmin(adminEmail, adminPassword)
	if err != nil {
		return Dataset{}, err
	}
	return Dataset{
		Offices:   DemoOffices(),
		Locations: DemoLocations(),
		Members:   DemoMembers(),
		Users:     []user.User{admin},
	}, nil
}
