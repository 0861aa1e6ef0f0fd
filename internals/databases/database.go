package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tutorku_backend/internals/configs"
	attendanceModel "tutorku_backend/internals/features/attendance/model"
	invoiceModel "tutorku_backend/internals/features/billing/invoices/model"
	paymentModel "tutorku_backend/internals/features/billing/payments/model"
	groupModel "tutorku_backend/internals/features/groups/model"
	notificationModel "tutorku_backend/internals/features/notifications/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	// DSN lengkap + statement_timeout.
	// Catatan: kalau pakai PgBouncer, arahkan host/port ke PgBouncer dan
	// biarkan PreferSimpleProtocol=true.
	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=tutorku&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// AutoMigrate menyiapkan seluruh tabel settlement + kolaboratornya.
// Index unik invoice_number dan index komposit periode ikut terbentuk
// dari tag gorm di model.
func AutoMigrate() {
	if err := DB.AutoMigrate(
		&groupModel.StudyGroup{},
		&groupModel.StudyGroupMember{},
		&attendanceModel.Lesson{},
		&attendanceModel.LessonAttendance{},
		&invoiceModel.Invoice{},
		&invoiceModel.InvoiceTransaction{},
		&paymentModel.Payment{},
		&notificationModel.Notification{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate gagal: %v", err)
	}
	log.Println("✅ AutoMigrate selesai.")
}

func WarmUpQueries() {
	// jalankan ringan supaya pool "keisi" & siap
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
