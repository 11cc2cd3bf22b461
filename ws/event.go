// Package ws, WebSocket bağlantı yönetimi ve gerçek zamanlı event dağıtımını sağlar.
//
// Mimari:
// - Hub: Tüm bağlantıları yöneten merkezi yapı (Observer pattern)
// - Client: Her WebSocket bağlantısını temsil eder
// - Event: Server → client iletilen mesaj formatı
//
// Event akışı:
// 1. Resepsiyon randevu oluşturur → HTTP POST → Service → DB kayıt
// 2. Service, Hub'ın BroadcastToAll metodunu çağırır
// 3. Hub, event'i tüm bağlı dashboard client'larına iletir
// 4. Her client'ın WritePump'ı event'i WebSocket'e yazar
// 5. Frontend dashboard'u canlı günceller — sayfa yenilemeye gerek kalmaz
package ws

// Event, WebSocket üzerinden iletilen bir mesajı temsil eder.
//
// Op (operation): Event türü — "appointment_created", "heartbeat" vb.
// Data: Event'e özgü payload — randevu objesi, ödeme bilgisi vb.
// Seq (sequence number): Her outbound event'e verilen artan sayı.
//   Frontend eksik event tespit etmek için seq'i takip eder.
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

// Client → Server operasyonları
const (
	OpHeartbeat = "heartbeat" // Client her 30sn'de gönderir — "hâlâ bağlıyım" sinyali
)

// Server → Client operasyonları
const (
	OpHeartbeatAck = "heartbeat_ack" // Heartbeat'e yanıt

	OpAppointmentCreate = "appointment_created" // Yeni randevu kaydedildi
	OpAppointmentUpdate = "appointment_updated" // Randevu güncellendi (durum, zaman, usta)
	OpAppointmentDelete = "appointment_deleted" // Randevu silindi

	OpPaymentCreate = "payment_created" // Yeni ödeme alındı — dashboard cirosu güncellenir

	OpInventoryLowStock = "inventory_low_stock" // Stok uyarı eşiğinin altına indi
)

// AppointmentDeleteData, appointment_deleted event'inin payload'ı.
// Silinen kaydın tamamı gönderilmez — frontend sadece ID ile listeden çıkarır.
type AppointmentDeleteData struct {
	ID string `json:"id"`
}

// LowStockData, inventory_low_stock event'inin payload'ı.
type LowStockData struct {
	ItemID   string `json:"item_id"`
	BranchID string `json:"branch_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}
