package main

import (
	"context"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"silab/internal/database"
	"silab/internal/domain"
	"silab/internal/repository"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "silab.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (children first to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM loan_items")
	db.Exec("DELETE FROM loan_transactions")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM equipment")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM staff")
	db.Exec("DELETE FROM accounts")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	users := repository.NewUserRepository(db)
	ctx := context.Background()

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err := users.Create(ctx, &domain.User{
		Email:        "admin@fti.uksw.edu",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Ibu Siti Aminah",
	}); err != nil {
		log.Fatal(err)
	}
	log.Println("Admin created: admin@fti.uksw.edu / admin123")

	techHash, _ := bcrypt.GenerateFromPassword([]byte("teknisi123"), bcrypt.DefaultCost)
	if err := users.Create(ctx, &domain.User{
		Email:        "budi@fti.uksw.edu",
		PasswordHash: string(techHash),
		Role:         domain.RoleTechnician,
		Name:         "Bpk. Budi Santoso",
	}); err != nil {
		log.Fatal(err)
	}

	memberHash, _ := bcrypt.GenerateFromPassword([]byte("member123"), bcrypt.DefaultCost)
	member := domain.User{
		Email:        "john.doe@student.uksw.edu",
		PasswordHash: string(memberHash),
		Role:         domain.RoleMember,
		Name:         "John Doe",
		Phone:        "081234567890",
	}
	if err := users.Create(ctx, &member); err != nil {
		log.Fatal(err)
	}

	// ================== STAFF ==================
	log.Println("Creating staff...")

	staffRepo := repository.NewStaffRepository(db)
	staff := []domain.Staff{
		{Name: "Bpk. Budi Santoso", NIP: "672005001", Email: "budi@uksw.edu", Phone: "08123456789", Type: domain.StaffTechnician, Status: domain.StaffActive},
		{Name: "Ibu Siti Aminah", NIP: "682010002", Email: "siti@uksw.edu", Phone: "08129876543", Type: domain.StaffAdmin, Status: domain.StaffActive},
		{Name: "Sdr. Andi Wijaya", NIP: "692015003", Email: "andi@uksw.edu", Phone: "08134567890", Type: domain.StaffTechnician, Status: domain.StaffInactive},
		{Name: "Sdr. Joko Susilo", NIP: "692018881", Email: "joko@uksw.edu", Phone: "08134567888", Type: domain.StaffTechnician, Status: domain.StaffActive},
	}
	for i := range staff {
		if err := staffRepo.Create(ctx, &staff[i]); err != nil {
			log.Fatal(err)
		}
	}

	// ================== ROOMS ==================
	log.Println("Creating rooms...")

	roomRepo := repository.NewRoomRepository(db)
	rooms := []domain.Room{
		{
			Name:        "Lab Rekayasa Perangkat Lunak 461",
			Description: "Laboratorium untuk pengembangan perangkat lunak, dilengkapi dengan PC high-end dan server lokal.",
			Capacity:    40,
			PIC:         "Bpk. Budi Santoso",
			Facilities:  []string{"AC", "Projector", "Whiteboard", "40 PC Core i7"},
			CalendarID:  "adm.uksw.edu_i394lo68heo5ouen6eitoppqdc",
		},
		{
			Name:        "Lab Jaringan Komputer",
			Description: "Fasilitas praktikum jaringan dengan perangkat Cisco Router, Switch, dan server rack.",
			Capacity:    30,
			PIC:         "Ibu Siti Aminah",
			Facilities:  []string{"AC", "Smart TV", "Cisco Routers", "Server Rack"},
			CalendarID:  "c_3ou2lfumin3q7k32648i1gbvv0",
		},
		{
			Name:        "Lab Robotika & IoT",
			Description: "Ruang kreatif untuk perakitan robot dan pengembangan Internet of Things.",
			Capacity:    25,
			PIC:         "Sdr. Joko Susilo",
			Facilities:  []string{"Soldering Station", "3D Printer", "Oscilloscope"},
		},
		{
			Name:        "Lab Multimedia",
			Description: "Studio untuk editing video, animasi 3D, dan desain grafis.",
			Capacity:    20,
			PIC:         "Bpk. Budi Santoso",
			Facilities:  []string{"Mac Studio", "Green Screen", "Sound System"},
		},
	}
	for i := range rooms {
		if err := roomRepo.Create(ctx, &rooms[i]); err != nil {
			log.Fatal(err)
		}
	}

	// ================== EQUIPMENT ==================
	log.Println("Creating equipment...")

	equipmentRepo := repository.NewEquipmentRepository(db)
	equipment := []domain.Equipment{
		{Name: "Projector Epson X1", Code: "FTI-PRJ-001", Category: "Elektronik", Condition: domain.ConditionGood, Available: true},
		{Name: "Kabel HDMI 10m", Code: "FTI-CBL-005", Category: "Aksesoris", Condition: domain.ConditionGood, Available: true},
		{Name: "DSLR Canon 600D", Code: "FTI-CAM-012", Category: "Multimedia", Condition: domain.ConditionMinorDamage, Available: true},
		{Name: "Arduino Uno Kit", Code: "FTI-IOT-099", Category: "IoT", Condition: domain.ConditionGood, Available: true},
		{Name: "Microphone Wireless", Code: "FTI-AUD-002", Category: "Audio", Condition: domain.ConditionMajorDamage, Available: false},
	}
	for i := range equipment {
		if err := equipmentRepo.Create(ctx, &equipment[i]); err != nil {
			log.Fatal(err)
		}
	}

	// ================== LOANS ==================
	log.Println("Creating loans...")

	loanRepo := repository.NewLoanRepository(db)
	loan := domain.LoanTransaction{
		Ref:            "seed-loan-1",
		BorrowerName:   "Michael (672021005)",
		OfficerName:    "Bpk. Budi",
		GuaranteeType:  "KTM",
		GuaranteeNo:    "672021005",
		BorrowedAt:     time.Now().Add(-3 * time.Hour),
		ExpectedReturn: time.Now().Add(21 * time.Hour),
		Items:          []domain.LoanItem{{EquipmentID: equipment[1].ID, EquipmentName: equipment[1].Name}},
	}
	if err := loanRepo.Open(ctx, &loan); err != nil {
		log.Fatal(err)
	}

	// ================== BOOKINGS ==================
	log.Println("Creating bookings...")

	bookingRepo := repository.NewBookingRepository(db)
	today := time.Now().Truncate(24 * time.Hour)
	bookings := []*domain.Booking{
		{
			RequestRef:        "seed-booking-1",
			RoomID:            rooms[0].ID,
			UserID:            member.ID,
			Purpose:           "Rapat HMP",
			ResponsiblePerson: "John Doe",
			ContactPerson:     "081234567890",
			StartTime:         today.Add(10 * time.Hour),
			EndTime:           today.Add(12 * time.Hour),
			ProposalFile:      "surat_peminjaman_101.pdf",
			Status:            domain.BookingApproved,
		},
		{
			RequestRef:        "seed-booking-2",
			RoomID:            rooms[1].ID,
			UserID:            member.ID,
			Purpose:           "Praktikum Pengganti Jarkom",
			ResponsiblePerson: "Jane Smith",
			ContactPerson:     "089876543210",
			StartTime:         today.Add(13 * time.Hour),
			EndTime:           today.Add(15 * time.Hour),
			ProposalFile:      "surat_permohonan_lab.pdf",
			Status:            domain.BookingPending,
		},
		{
			RequestRef:        "seed-booking-3",
			RoomID:            rooms[2].ID,
			UserID:            member.ID,
			Purpose:           "Riset Robotika",
			ResponsiblePerson: "Michael",
			ContactPerson:     "081234511111",
			StartTime:         today.Add(33 * time.Hour),
			EndTime:           today.Add(35 * time.Hour),
			Status:            domain.BookingPending,
		},
	}
	for _, b := range bookings {
		if err := bookingRepo.CreateBatch(ctx, []*domain.Booking{b}); err != nil {
			log.Fatal(err)
		}
	}

	// ================== ACCOUNTS ==================
	log.Println("Creating accounts...")

	accountRepo := repository.NewAccountRepository(db)
	accounts := []domain.Account{
		{Name: "John Doe", Email: "john.doe@student.uksw.edu", Role: domain.AccountStudent, Identifier: "672019001", Department: "Teknik Informatika", Status: domain.AccountActive},
		{Name: "Dr. Jane Smith", Email: "jane.smith@uksw.edu", Role: domain.AccountLecturer, Identifier: "0012038801", Department: "Sistem Informasi", Status: domain.AccountActive},
		{Name: "Michael Johnson", Email: "michael.j@student.uksw.edu", Role: domain.AccountStudent, Identifier: "682020005", Department: "Desain Komunikasi Visual", Status: domain.AccountSuspended},
		{Name: "Sarah Connor", Email: "sarah.c@student.uksw.edu", Role: domain.AccountStudent, Identifier: "672021111", Department: "Teknik Informatika", Status: domain.AccountInactive},
	}
	for i := range accounts {
		if err := accountRepo.Create(ctx, &accounts[i]); err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Seed complete.")
}
