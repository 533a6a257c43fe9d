package usecase

// User-facing messages. They are shown verbatim in the error area, alerts and
// trigger labels.
const (
	msgEmptyURL       = "Vui lòng nhập đường dẫn TikTok!"
	msgExtractFailed  = "Có lỗi xảy ra"
	msgNoImages       = "Không tìm thấy ảnh trong link này."
	msgZipFailed      = "Lỗi khi tải zip"
	msgZipAlertPrefix = "Lỗi tải xuống: "
	msgNoSourceURL    = "Không có URL để chuyển đổi"
	msgConvertFailed  = "Lỗi chuyển đổi"
	msgConvertPrefix  = "Lỗi chuyển đổi: "

	labelZip        = "Tải Tất Cả (ZIP)"
	labelZipping    = "Đang nén..."
	labelConvert    = "Tải MP3"
	labelConverting = "Đang chuyển đổi..."
)
