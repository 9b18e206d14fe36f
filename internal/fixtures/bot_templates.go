package fixtures

import "github.com/Jevon1999/api-presensi/internal/domain/command"

// Reminder template keys. They are not command results.
const (
	MsgRemindCheckIn  = "remind.check_in"
	MsgRemindCheckOut = "remind.check_out"
)

// DefaultBotTemplates are the chat replies used when no template file
// overrides them. Placeholders are written as {name}.
func DefaultBotTemplates() map[string]string {
	return map[string]string{
		command.MsgCheckInSuccess: "✅ *Check-in Berhasil!*\n\n" +
			"👤 *Nama:* {name}\n" +
			"🏢 *Kantor:* {office}\n" +
			"📅 *Tanggal:* {date}\n" +
			"🕐 *Waktu Check-in:* {time}\n" +
			"📊 *Status:* {status}\n\n" +
			"Selamat bekerja! 💪",

		command.MsgCheckInAlready: "ℹ️ Kamu sudah check-in hari ini.\n\n" +
			"Check-in: {time}\n" +
			"Status: {status}",

		command.MsgCheckOutSuccess: "✅ *Check-out Berhasil!*\n\n" +
			"👤 *Nama:* {name}\n" +
			"📅 *Tanggal:* {date}\n" +
			"🕐 *Check-in:* {check_in}\n" +
			"🕑 *Check-out:* {check_out}\n" +
			"⏱️ *Total Jam Kerja:* {hours}\n\n" +
			"Terima kasih dan sampai jumpa besok! 👋",

		command.MsgCheckOutAlready: "ℹ️ Kamu sudah check-out hari ini.\n\n" +
			"Check-out: {time}",

		command.MsgNotCheckedIn: "❌ *Check-out Gagal*\n\n" +
			"📝 Kamu belum check-in hari ini.",

		command.MsgOutsideGeofence: "❌ *Presensi Gagal*\n\n" +
			"📝 Lokasi kamu di luar jangkauan kantor. Pastikan kamu berada di area kantor.",

		command.MsgMemberNotFound: "❌ Nomor kamu tidak terdaftar sebagai member aktif.\n\n" +
			"Silakan hubungi admin.",

		command.MsgProgressSuccess: "📝 *Progress Berhasil Disimpan!*\n\n" +
			"📅 *Tanggal:* {date}\n" +
			"📝 *Deskripsi:* {description}\n\n" +
			"Tetap semangat! 💪",

		command.MsgProgressDuplicate: "❌ *Progress Gagal Disimpan*\n\n" +
			"📝 Progress untuk tanggal ini sudah ada.",

		command.MsgProgressEmpty: "❌ Deskripsi progress kosong.\n\n" +
			"Contoh: `progress Membuat halaman login`",

		command.MsgStatusNone: "📋 *Status Hari Ini* ({date})\n\n" +
			"Kamu belum check-in hari ini.",

		command.MsgStatusCheckedIn: "📋 *Status Hari Ini* ({date})\n\n" +
			"🕐 Check-in: {check_in}\n" +
			"📊 Status: {status}\n\n" +
			"Jangan lupa check-out sebelum pulang.",

		command.MsgStatusCheckedOut: "📋 *Status Hari Ini* ({date})\n\n" +
			"🕐 Check-in: {check_in}\n" +
			"🕑 Check-out: {check_out}\n" +
			"⏱️ Total: {hours}\n" +
			"📊 Status: {status}",

		command.MsgHelp: "Halo! 👋\n\n" +
			"Saya bot absensi PKL otomatis. Perintah yang tersedia:\n" +
			"• `checkin` - absen masuk (kirim lokasi dengan caption ini)\n" +
			"• `checkout` - absen pulang (kirim lokasi dengan caption ini)\n" +
			"• `progress [deskripsi]` - laporan progress harian\n" +
			"• `status` - cek presensi hari ini",

		command.MsgUnknown: "❓ *Perintah tidak dikenali*\n\n" +
			"Gunakan salah satu perintah berikut:\n" +
			"• `checkin` - Untuk absen masuk\n" +
			"• `checkout` - Untuk absen pulang\n" +
			"• `progress [deskripsi]` - Untuk laporan progress\n" +
			"• `status` - Untuk cek presensi hari ini",

		command.MsgLocationRequired: "📍 Presensi membutuhkan lokasi.\n\n" +
			"Bagikan lokasi kamu saat ini dan tulis `{command}` sebagai caption.",

		command.MsgLocationCaptionFirst: "📍 Lokasi diterima, tapi tanpa perintah.\n\n" +
			"Kirim ulang lokasi dengan caption `checkin` atau `checkout`.",

		command.MsgValidationFailed: "❌ Data tidak valid.\n\n" +
			"📝 {details}",

		command.MsgError: "❌ Terjadi kesalahan.\n\n" +
			"Silakan coba lagi atau hubungi admin jika masalah berlanjut.",

		MsgRemindCheckIn: "⏰ Selamat pagi, {name}!\n\n" +
			"Waktunya check-in. Jangan lupa absen masuk ya!",

		MsgRemindCheckOut: "⏰ Waktunya pulang, {name}!\n\n" +
			"Jangan lupa check-out sebelum meninggalkan kantor.",
	}
}
