// file: internals/features/gym/attendance/service/errors.go
package service

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Sentinel error inti absensi. Controller yang memetakan ke status HTTP;
// pesan dibiarkan spesifik supaya klien bisa membedakan kondisi
// ("sudah dikunci" vs "sudah check-in" vs "belum bayar" vs "sesi tidak ada").
var (
	ErrClassNotFound           = errors.New("kelas tidak ditemukan")
	ErrClassCompleted          = errors.New("kelas sudah selesai, tidak bisa membuka sesi baru")
	ErrSessionNumberOutOfRange = errors.New("nomor sesi di luar jangkauan total sesi kelas")
	ErrSessionAlreadyOpened    = errors.New("sesi dengan nomor ini sudah pernah dibuka")
	ErrNoPaidEnrollees         = errors.New("tidak bisa membuka sesi tanpa peserta berbayar")
	ErrAttendanceNotFound      = errors.New("entri absensi tidak ditemukan")
	ErrAttendanceLocked        = errors.New("absensi sudah dikunci, perubahan ditolak")
	ErrNothingToLock           = errors.New("tidak ada entri absensi pada tanggal tersebut")
	ErrNoSessionOpened         = errors.New("belum ada sesi yang dibuka untuk kelas ini")
	ErrNotInSession            = errors.New("kamu tidak terdaftar pada sesi ini")
	ErrNotEnrolled             = errors.New("enrollment berbayar tidak ditemukan untuk kelas ini")
	ErrAlreadyCheckedIn        = errors.New("sudah check-in pada sesi ini")
)

// isUniqueViolation mengenali pelanggaran unique index lintas driver:
// Postgres (lib/pq 23505), translasi GORM, dan SQLite (dipakai di test).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
