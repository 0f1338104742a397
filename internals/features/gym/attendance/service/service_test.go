package service

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	attendanceModel "gymku_backend/internals/features/gym/attendance/model"
	classModel "gymku_backend/internals/features/gym/classes/model"
	enrollmentModel "gymku_backend/internals/features/gym/enrollments/model"
	notificationModel "gymku_backend/internals/features/gym/notifications/model"
)

/* ===================== HARNESS ===================== */

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&classModel.GymClassModel{},
		&enrollmentModel.ClassEnrollmentModel{},
		&attendanceModel.ClassSessionAttendanceModel{},
		&notificationModel.NotificationModel{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func seedClass(t *testing.T, db *gorm.DB, totalSessions int) *classModel.GymClassModel {
	t.Helper()
	cls := &classModel.GymClassModel{
		GymClassName:          "Functional Training",
		GymClassTrainerUserId: uuid.New(),
		GymClassTotalSessions: totalSessions,
		GymClassStatus:        classModel.ClassStatusUpcoming,
	}
	if err := db.Create(cls).Error; err != nil {
		t.Fatalf("seed class: %v", err)
	}
	return cls
}

func seedEnrollment(t *testing.T, db *gorm.DB, classID uuid.UUID, paid bool) uuid.UUID {
	t.Helper()
	userID := uuid.New()
	enr := &enrollmentModel.ClassEnrollmentModel{
		ClassEnrollmentClassId:       classID,
		ClassEnrollmentUserId:        userID,
		ClassEnrollmentPaymentStatus: paid,
		ClassEnrollmentStatus:        enrollmentModel.EnrollmentStatusActive,
	}
	if err := db.Create(enr).Error; err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}
	return userID
}

func reloadClass(t *testing.T, db *gorm.DB, classID uuid.UUID) *classModel.GymClassModel {
	t.Helper()
	var cls classModel.GymClassModel
	if err := db.Where("gym_class_id = ?", classID).Take(&cls).Error; err != nil {
		t.Fatalf("reload class: %v", err)
	}
	return &cls
}

func countRows(t *testing.T, db *gorm.DB, classID uuid.UUID) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&attendanceModel.ClassSessionAttendanceModel{}).
		Where("class_session_attendance_class_id = ?", classID).
		Count(&n).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}

var testDate = time.Date(2026, 3, 9, 10, 30, 0, 0, time.UTC)

/* ===================== OPEN SESSION ===================== */

func TestOpenSessionCreatesOneRowPerPaidEnrollee(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	cls := seedClass(t, db, 8)

	paid1 := seedEnrollment(t, db, cls.GymClassId, true)
	paid2 := seedEnrollment(t, db, cls.GymClassId, true)
	seedEnrollment(t, db, cls.GymClassId, false) // belum bayar

	res, err := svc.OpenSession(cls.GymClassId, 1, testDate, false)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	if res.Created != 2 {
		t.Fatalf("created = %d, want 2", res.Created)
	}
	if res.IsLastSession {
		t.Fatal("IsLastSession = true untuk sesi 1 dari 8")
	}

	rows, err := svc.ListSessionRows(cls.GymClassId, 1)
	if err != nil {
		t.Fatalf("ListSessionRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	seen := map[uuid.UUID]bool{}
	for _, r := range rows {
		seen[r.ClassSessionAttendanceUserId] = true
		if r.ClassSessionAttendanceIsPresent {
			t.Error("baris baru harus absen by default")
		}
		if r.ClassSessionAttendanceIsLocked {
			t.Error("baris baru tidak boleh terkunci")
		}
		if r.ClassSessionAttendanceRowKind != attendanceModel.RowKindReal {
			t.Errorf("row_kind = %q, want real", r.ClassSessionAttendanceRowKind)
		}
		if !r.ClassSessionAttendanceSessionDate.Equal(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("session_date belum dinormalkan ke tengah malam: %v", r.ClassSessionAttendanceSessionDate)
		}
	}
	if !seen[paid1] || !seen[paid2] {
		t.Error("peserta berbayar tidak lengkap di baris sesi")
	}

	got := reloadClass(t, db, cls.GymClassId)
	if got.GymClassCurrentSession != 1 {
		t.Errorf("current_session = %d, want 1", got.GymClassCurrentSession)
	}
	if got.GymClassStatus != classModel.ClassStatusOngoing {
		t.Errorf("status = %q, want ongoing", got.GymClassStatus)
	}
}

func TestOpenSessionDuplicateNumberRejected(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	cls := seedClass(t, db, 8)
	seedEnrollment(t, db, cls.GymClassId, true)

	if _, err := svc.OpenSession(cls.GymClassId, 1, testDate, false); err != nil {
		t.Fatalf("OpenSession pertama: %v", err)
	}
	_, err := svc.OpenSession(cls.GymClassId, 1, testDate.AddDate(0, 0, 7), false)
	if !errors.Is(err, ErrSessionAlreadyOpened) {
		t.Fatalf("err = %v, want ErrSessionAlreadyOpened", err)
	}
	if n := countRows(t, db, cls.GymClassId); n != 1 {
		t.Fatalf("rows = %d setelah duplikat ditolak, want 1", n)
	}
}

func TestOpenSessionPreconditions(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	cls := seedClass(t, db, 4)
	seedEnrollment(t, db, cls.GymClassId, true)

	if _, err := svc.OpenSession(uuid.New(), 1, testDate, false); !errors.Is(err, ErrClassNotFound) {
		t.Errorf("kelas hilang: err = %v, want ErrClassNotFound", err)
	}
	if _, err := svc.OpenSession(cls.GymClassId, 0, testDate, false); !errors.Is(err, ErrSessionNumberOutOfRange) {
		t.Errorf("sesi 0: err = %v, want ErrSessionNumberOutOfRange", err)
	}
	if _, err := svc.OpenSession(cls.GymClassId, 5, testDate, false); !errors.Is(err, ErrSessionNumberOutOfRange) {
		t.Errorf("sesi 5 dari 4: err = %v, want ErrSessionNumberOutOfRange", err)
	}

	if err := db.Model(&classModel.GymClassModel{}).
		Where("gym_class_id = ?", cls.GymClassId).
		Update("gym_class_status", classModel.ClassStatusCompleted).Error; err != nil {
		t.Fatalf("set completed: %v", err)
	}
	if _, err := svc.OpenSession(cls.GymClassId, 1, testDate, false); !errors.Is(err, ErrClassCompleted) {
		t.Errorf("kelas selesai: err = %v, want ErrClassCompleted", err)
	}
}

func TestOpenSessionWithoutPaidEnrollees(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	cls := seedClass(t, db, 8)
	seedEnrollment(t, db, cls.GymClassId, false) // hanya yang belum bayar

	_, err := svc.OpenSession(cls.GymClassId, 1, testDate, false)
	if !errors.Is(err, ErrNoPaidEnrollees) {
		t.Fatalf("err = %v, want ErrNoPaidEnrollees", err)
	}
	if n := countRows(t, db, cls.GymClassId); n != 0 {
		t.Fatalf("rows = %d setelah tolak, want 0", n)
	}

	// allowEmpty menulis placeholder, bukan menolak
	res, err := svc.OpenSession(cls.GymClassId, 1, testDate, true)
	if err != nil {
		t.Fatalf("OpenSession allowEmpty: %v", err)
	}
	if !res.Placeholder || res.Created != 0 {
		t.Fatalf("result = %+v, want placeholder dengan created 0", res)
	}

	// placeholder tercatat sebagai "sesi pernah dibuka"
	if _, err := svc.OpenSession(cls.GymClassId, 1, testDate, true); !errors.Is(err, ErrSessionAlreadyOpened) {
		t.Fatalf("buka ulang placeholder: err = %v, want ErrSessionAlreadyOpened", err)
	}
}

func TestOpenSessionSnapshotExcludesLatePayers(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	cls := seedClass(t, db, 8)
	seedEnrollment(t, db, cls.GymClassId, true)

	if _, err := svc.OpenSession(cls.GymClassId, 1, testDate, false); err != nil {
		t.Fatalf("OpenSession 1: %v", err)
	}

	lateUser := seedEnrollment(t, db, cls.GymClassId, true)

	rows, err := svc.ListSessionRows(cls.GymClassId, 1)
	if err != nil {
		t.Fatalf("ListSessionRows: %v", err)
	}
	for _, r := range rows {
		if r.ClassSessionAttendanceUserId == lateUser {
			t.Fatal("pembayar telat tidak boleh masuk sesi yang sudah dibuka")
		}
	}

	res, err := svc.OpenSession(cls.GymClassId, 2, testDate.AddDate(0, 0, 7), false)
	if err != nil {
		t.Fatalf("OpenSession 2: %v", err)
	}
	if res.Created != 2 {
		t.Fatalf("sesi 2 created = %d, want 2 (snapshot baru)", res.Created)
	}
}

func TestOpenFinalSessionCompletesClass(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	cls := seedClass(t, db, 2)
	seedEnrollment(t, db, cls.GymClassId, true)

	if _, err := svc.OpenSession(cls.GymClassId, 1, testDate, false); err != nil {
		t.Fatalf("OpenSession 1: %v", err)
	}
	if got := reloadClass(t, db, cls.GymClassId); got.GymClassStatus == classModel.ClassStatusCompleted {
		t.Fatal("kelas selesai terlalu dini pada sesi 1 dari 2")
	}

	res, err := svc.OpenSession(cls.GymClassId, 2, testDate.AddDate(0, 0, 7), false)
	if err != nil {
		t.Fatalf("OpenSession 2: %v", err)
	}
	if !res.IsLastSession {
		t.Error("IsLastSession = false pada sesi terakhir")
	}
	got := reloadClass(t, db, cls.GymClassId)
	if got.GymClassStatus != classModel.ClassStatusCompleted {
		t.Errorf("status = %q, want completed", got.GymClassStatus)
	}
	if got.GymClassCurrentSession != 2 {
		t.Errorf("current_session = %d, want 2", got.GymClassCurrentSession)
	}

	if _, err := svc.OpenSession(cls.GymClassId, 1, testDate, false); !errors.Is(err, ErrClassCompleted) {
		t.Errorf("buka sesi di kelas selesai: err = %v, want ErrClassCompleted", err)
	}
}

/* ===================== MARK & OVERRIDE ===================== */

func TestMarkAttendanceSetsPresenceAndCheckinTime(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	cls := seedClass(t, db, 8)
	userID := seedEnrollment(t, db, cls.GymClassId, true)
	if _, err := svc.OpenSession(cls.GymClassId, 1, testDate, false); err != nil {
		t.Fatalf("OpenSession: %v", err)
	}

	notes := "datang telat 10 menit"
	row, err := svc.MarkAttendance(cls.GymClassId, userID, 1, true, nil, &notes)
	if err != nil {
		t.Fatalf("MarkAttendance hadir: %v", err)
	}
	if !row.ClassSessionAttendanceIsPresent {
		t.Error("is_present = false setelah mark hadir")
	}
	if row.ClassSessionAttendanceCheckinTime == nil {
		t.Error("checkin_time kosong setelah mark hadir")
	}
	if row.ClassSessionAttendanceNotes != notes {
		t.Errorf("notes = %q, want %q", row.ClassSessionAttendanceNotes, notes)
	}
	if row.ClassSessionAttendanceCheckinMethod != attendanceModel.CheckinMethodTrainer {
		t.Errorf("checkin_method = %q, want trainer", row.ClassSessionAttendanceCheckinMethod)
	}

	// unmark membalik status dan membersihkan waktu check-in
	row, err = svc.MarkAttendance(cls.GymClassId, userID, 1, false, nil, nil)
	if err != nil {
		t.Fatalf("MarkAttendance absen: %v", err)
	}
	if row.ClassSessionAttendanceIsPresent {
		t.Error("is_present = true setelah unmark")
	}
	if row.ClassSessionAttendanceCheckinTime != nil {
		t.Error("checkin_time masih terisi setelah unmark")
	}
	if row.ClassSessionAttendanceCheckinMethod != "" {
		t.Errorf("checkin_method = %q setelah unmark, want kosong", row.ClassSessionAttendanceCheckinMethod)
	}

	if n := countRows(t, db, cls.GymClassId); n != 1 {
		t.Fatalf("rows = %d, mark ulang tidak boleh menambah baris", n)
	}
}

func TestMarkAttendanceUpsertsMissingRow(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	cls := seedClass(t, db, 8)
	userID := uuid.New() // tidak pernah masuk snapshot

	date := testDate
	row, err := svc.MarkAttendance(cls.GymClassId, userID, 3, true, &date, nil)
	if err != nil {
		t.Fatalf("MarkAttendance upsert: %v", err)
	}
	if row.ClassSessionAttendanceSessionNumber != 3 {
		t.Errorf("session_number = %d, want 3", row.ClassSessionAttendanceSessionNumber)
	}
	if row.ClassSessionAttendanceId == uuid.Nil {
		t.Error("baris upsert tanpa id")
	}
	if n := countRows(t, db, cls.GymClassId); n != 1 {
		t.Fatalf("rows = %d, want 1", n)
	}
}

func TestLockedRowRejectsMarkButAllowsOverride(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	cls := seedClass(t, db, 8)
	userID := seedEnrollment(t, db, cls.GymClassId, true)
	if _, err := svc.OpenSession(cls.GymClassId, 1, testDate, false); err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	if _, err := svc.LockSession(cls.GymClassId, testDate); err != nil {
		t.Fatalf("LockSession: %v", err)
	}

	row, err := svc.MarkAttendance(cls.GymClassId, userID, 1, true, nil, nil)
	if !errors.Is(err, ErrAttendanceLocked) {
		t.Fatalf("err = %v, want ErrAttendanceLocked", err)
	}
	if row == nil || row.ClassSessionAttendanceIsPresent {
		t.Fatal("baris terkunci harus dikembalikan apa adanya (tetap absen)")
	}

	actor := uuid.New()
	over, err := svc.OverrideStatus(row.ClassSessionAttendanceId, true, actor)
	if err != nil {
		t.Fatalf("OverrideStatus: %v", err)
	}
	if !over.ClassSessionAttendanceIsPresent {
		t.Error("override tidak mengubah is_present")
	}
	if !over.ClassSessionAttendanceIsLocked {
		t.Error("override tidak boleh membuka lock")
	}
	if over.ClassSessionAttendanceMeta["last_override_by"] != actor.String() {
		t.Errorf("meta last_override_by = %v, want %s", over.ClassSessionAttendanceMeta["last_override_by"], actor)
	}
}

func TestOverrideStatusNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)

	if _, err := svc.OverrideStatus(uuid.New(), true, uuid.New()); !errors.Is(err, ErrAttendanceNotFound) {
		t.Fatalf("err = %v, want ErrAttendanceNotFound", err)
	}
}

/* ===================== LOCK / UNLOCK ===================== */

func TestLockSessionStampsMarkedAtOnce(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	cls := seedClass(t, db, 8)
	seedEnrollment(t, db, cls.GymClassId, true)
	seedEnrollment(t, db, cls.GymClassId, true)
	if _, err := svc.OpenSession(cls.GymClassId, 1, testDate, false); err != nil {
		t.Fatalf("OpenSession: %v", err)
	}

	locked, err := svc.LockSession(cls.GymClassId, testDate)
	if err != nil {
		t.Fatalf("LockSession: %v", err)
	}
	if locked != 2 {
		t.Fatalf("locked = %d, want 2", locked)
	}

	rows, _ := svc.ListSessionRows(cls.GymClassId, 1)
	firstMark := map[uuid.UUID]time.Time{}
	for _, r := range rows {
		if !r.ClassSessionAttendanceIsLocked {
			t.Error("baris belum terkunci setelah LockSession")
		}
		if r.ClassSessionAttendanceMarkedAt == nil {
			t.Fatal("marked_at kosong setelah lock pertama")
		}
		firstMark[r.ClassSessionAttendanceId] = *r.ClassSessionAttendanceMarkedAt
	}

	// lock kedua idempoten: marked_at tidak direset
	time.Sleep(5 * time.Millisecond)
	if _, err := svc.LockSession(cls.GymClassId, testDate); err != nil {
		t.Fatalf("LockSession kedua: %v", err)
	}
	rows, _ = svc.ListSessionRows(cls.GymClassId, 1)
	for _, r := range rows {
		if !r.ClassSessionAttendanceMarkedAt.Equal(firstMark[r.ClassSessionAttendanceId]) {
			t.Error("marked_at berubah pada re-lock")
		}
	}
}

func TestLockSessionNothingToLock(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	cls := seedClass(t, db, 8)

	if _, err := svc.LockSession(cls.GymClassId, testDate); !errors.Is(err, ErrNothingToLock) {
		t.Fatalf("err = %v, want ErrNothingToLock", err)
	}
}

func TestUnlockSessionReopensRows(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	cls := seedClass(t, db, 8)
	userID := seedEnrollment(t, db, cls.GymClassId, true)
	if _, err := svc.OpenSession(cls.GymClassId, 1, testDate, false); err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	if _, err := svc.LockSession(cls.GymClassId, testDate); err != nil {
		t.Fatalf("LockSession: %v", err)
	}

	n, err := svc.UnlockSession(cls.GymClassId, testDate)
	if err != nil {
		t.Fatalf("UnlockSession: %v", err)
	}
	if n != 1 {
		t.Fatalf("unlocked = %d, want 1", n)
	}

	// setelah unlock, mark biasa jalan lagi
	row, err := svc.MarkAttendance(cls.GymClassId, userID, 1, true, nil, nil)
	if err != nil {
		t.Fatalf("MarkAttendance setelah unlock: %v", err)
	}
	if !row.ClassSessionAttendanceIsPresent {
		t.Error("mark setelah unlock tidak tersimpan")
	}
	// marked_at sengaja tidak dihapus sebagai jejak
	if row.ClassSessionAttendanceMarkedAt == nil {
		t.Error("marked_at hilang setelah unlock")
	}

	if _, err := svc.UnlockSession(cls.GymClassId, testDate); !errors.Is(err, ErrNothingToLock) {
		t.Errorf("unlock tanpa baris terkunci: err = %v, want ErrNothingToLock", err)
	}
}

/* ===================== SELF CHECK-IN ===================== */

func TestSelfCheckInHappyPath(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	cls := seedClass(t, db, 8)
	userID := seedEnrollment(t, db, cls.GymClassId, true)
	if _, err := svc.OpenSession(cls.GymClassId, 1, testDate, false); err != nil {
		t.Fatalf("OpenSession: %v", err)
	}

	row, err := svc.SelfCheckIn(userID, cls.GymClassId)
	if err != nil {
		t.Fatalf("SelfCheckIn: %v", err)
	}
	if !row.ClassSessionAttendanceIsPresent {
		t.Error("is_present = false setelah check-in")
	}
	if row.ClassSessionAttendanceCheckinTime == nil {
		t.Error("checkin_time kosong setelah check-in")
	}
	if row.ClassSessionAttendanceCheckinMethod != attendanceModel.CheckinMethodQR {
		t.Errorf("checkin_method = %q, want qr", row.ClassSessionAttendanceCheckinMethod)
	}
}

func TestSelfCheckInDoubleScanRejected(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	cls := seedClass(t, db, 8)
	userID := seedEnrollment(t, db, cls.GymClassId, true)
	if _, err := svc.OpenSession(cls.GymClassId, 1, testDate, false); err != nil {
		t.Fatalf("OpenSession: %v", err)
	}

	first, err := svc.SelfCheckIn(userID, cls.GymClassId)
	if err != nil {
		t.Fatalf("SelfCheckIn pertama: %v", err)
	}
	firstTime := *first.ClassSessionAttendanceCheckinTime

	time.Sleep(5 * time.Millisecond)
	again, err := svc.SelfCheckIn(userID, cls.GymClassId)
	if !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("err = %v, want ErrAlreadyCheckedIn", err)
	}
	if again == nil {
		t.Fatal("scan kedua harus mengembalikan baris yang ada")
	}
	if !again.ClassSessionAttendanceCheckinTime.Equal(firstTime) {
		t.Error("checkin_time berubah pada scan kedua")
	}
}

func TestSelfCheckInGates(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	cls := seedClass(t, db, 8)
	paidUser := seedEnrollment(t, db, cls.GymClassId, true)
	unpaidUser := seedEnrollment(t, db, cls.GymClassId, false)

	if _, err := svc.SelfCheckIn(paidUser, uuid.New()); !errors.Is(err, ErrClassNotFound) {
		t.Errorf("kelas hilang: err = %v, want ErrClassNotFound", err)
	}
	if _, err := svc.SelfCheckIn(unpaidUser, cls.GymClassId); !errors.Is(err, ErrNotEnrolled) {
		t.Errorf("belum bayar: err = %v, want ErrNotEnrolled", err)
	}
	if _, err := svc.SelfCheckIn(paidUser, cls.GymClassId); !errors.Is(err, ErrNoSessionOpened) {
		t.Errorf("belum ada sesi: err = %v, want ErrNoSessionOpened", err)
	}

	if _, err := svc.OpenSession(cls.GymClassId, 1, testDate, false); err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	// bayar setelah sesi dibuka: enrolled tapi tidak punya baris
	lateUser := seedEnrollment(t, db, cls.GymClassId, true)
	if _, err := svc.SelfCheckIn(lateUser, cls.GymClassId); !errors.Is(err, ErrNotInSession) {
		t.Errorf("pembayar telat: err = %v, want ErrNotInSession", err)
	}
}

func TestSelfCheckInRejectsLockedRow(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	cls := seedClass(t, db, 8)
	userID := seedEnrollment(t, db, cls.GymClassId, true)
	if _, err := svc.OpenSession(cls.GymClassId, 1, testDate, false); err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	if _, err := svc.LockSession(cls.GymClassId, testDate); err != nil {
		t.Fatalf("LockSession: %v", err)
	}

	// token QR yang masih hidup tidak boleh menembus baris terkunci
	row, err := svc.SelfCheckIn(userID, cls.GymClassId)
	if !errors.Is(err, ErrAttendanceLocked) {
		t.Fatalf("err = %v, want ErrAttendanceLocked", err)
	}
	if row == nil || row.ClassSessionAttendanceIsPresent {
		t.Fatal("baris terkunci harus dikembalikan apa adanya (tetap absen)")
	}

	rows, err := svc.ListSessionRows(cls.GymClassId, 1)
	if err != nil {
		t.Fatalf("ListSessionRows: %v", err)
	}
	if rows[0].ClassSessionAttendanceIsPresent {
		t.Error("check-in lolos ke baris terkunci")
	}
	if rows[0].ClassSessionAttendanceCheckinTime != nil {
		t.Error("checkin_time terisi pada baris terkunci")
	}
}

func TestSelfCheckInTargetsLatestSession(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	cls := seedClass(t, db, 8)
	userID := seedEnrollment(t, db, cls.GymClassId, true)

	if _, err := svc.OpenSession(cls.GymClassId, 1, testDate, false); err != nil {
		t.Fatalf("OpenSession 1: %v", err)
	}
	if _, err := svc.OpenSession(cls.GymClassId, 2, testDate.AddDate(0, 0, 7), false); err != nil {
		t.Fatalf("OpenSession 2: %v", err)
	}

	row, err := svc.SelfCheckIn(userID, cls.GymClassId)
	if err != nil {
		t.Fatalf("SelfCheckIn: %v", err)
	}
	if row.ClassSessionAttendanceSessionNumber != 2 {
		t.Fatalf("check-in ke sesi %d, want 2 (sesi terbaru)", row.ClassSessionAttendanceSessionNumber)
	}
}

/* ===================== RESET ===================== */

func TestResetClassAttendanceAllowsReopen(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	cls := seedClass(t, db, 8)
	seedEnrollment(t, db, cls.GymClassId, true)
	if _, err := svc.OpenSession(cls.GymClassId, 1, testDate, false); err != nil {
		t.Fatalf("OpenSession: %v", err)
	}

	n, err := svc.ResetClassAttendance(cls.GymClassId, uuid.New())
	if err != nil {
		t.Fatalf("ResetClassAttendance: %v", err)
	}
	if n != 1 {
		t.Fatalf("deleted = %d, want 1", n)
	}
	if got := countRows(t, db, cls.GymClassId); got != 0 {
		t.Fatalf("rows = %d setelah reset, want 0", got)
	}

	// hapus permanen: tidak boleh ada tombstone yang menduduki
	// unique index komposit
	var tombstones int64
	if err := db.Unscoped().Model(&attendanceModel.ClassSessionAttendanceModel{}).
		Where("class_session_attendance_class_id = ?", cls.GymClassId).
		Count(&tombstones).Error; err != nil {
		t.Fatalf("count unscoped: %v", err)
	}
	if tombstones != 0 {
		t.Fatalf("tombstones = %d setelah reset, want 0", tombstones)
	}

	// nomor sesi yang sama boleh dibuka ulang
	if _, err := svc.OpenSession(cls.GymClassId, 1, testDate, false); err != nil {
		t.Fatalf("OpenSession ulang setelah reset: %v", err)
	}
}

func TestMarkAttendanceStopsOnPersistentConflict(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	cls := seedClass(t, db, 8)
	userID := seedEnrollment(t, db, cls.GymClassId, true)
	if _, err := svc.OpenSession(cls.GymClassId, 1, testDate, false); err != nil {
		t.Fatalf("OpenSession: %v", err)
	}

	// Tombstone manual: baris soft-deleted tak terlihat lookup tapi
	// masih menduduki unique index. Mark harus berhenti dengan error,
	// bukan mencoba ulang tanpa batas.
	if err := db.
		Where("class_session_attendance_class_id = ?", cls.GymClassId).
		Delete(&attendanceModel.ClassSessionAttendanceModel{}).Error; err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := svc.MarkAttendance(cls.GymClassId, userID, 1, true, nil, nil)
		done <- err
	}()
	select {
	case err := <-done:
		if err == nil {
			t.Fatal("mark di atas tombstone harus gagal")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("MarkAttendance tidak selesai (retry tanpa batas)")
	}
}
