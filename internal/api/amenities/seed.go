package amenities

import (
	"context"
	"sort"

	"rental-app/internal/domain/locale"
	"rental-app/internal/domain/properties"
	"rental-app/internal/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type labels = map[locale.Locale]string

// catalogue is the built-in amenity list: included services (IS_) and interior
// facilities (IF_).
var catalogue = map[string]labels{
	"IS_electricity":         {locale.VI: "Điện", locale.EN: "Electricity", locale.JA: "電気"},
	"IS_water":               {locale.VI: "Nước", locale.EN: "Water", locale.JA: "水道"},
	"IS_wifi":                {locale.VI: "Wi-Fi", locale.EN: "Wi-Fi", locale.JA: "Wi-Fi"},
	"IS_cable_tv":            {locale.VI: "Truyền hình cáp", locale.EN: "Cable TV", locale.JA: "ケーブルテレビ"},
	"IS_gas":                 {locale.VI: "Gas", locale.EN: "Gas", locale.JA: "ガス"},
	"IS_building_management": {locale.VI: "Quản lý tòa nhà", locale.EN: "Building Management", locale.JA: "ビル管理"},
	"IS_security_service":    {locale.VI: "Dịch vụ bảo vệ", locale.EN: "Security Service", locale.JA: "セキュリティサービス"},
	"IS_cleaning_service":    {locale.VI: "Dịch vụ dọn dẹp", locale.EN: "Cleaning Service", locale.JA: "清掃サービス"},
	"IS_maintenance_service": {locale.VI: "Dịch vụ bảo trì", locale.EN: "Maintenance Service", locale.JA: "メンテナンスサービス"},
	"IS_garbage_collection":  {locale.VI: "Thu gom rác", locale.EN: "Garbage Collection", locale.JA: "ゴミ収集"},
	"IS_laundry_service":     {locale.VI: "Dịch vụ giặt ủi", locale.EN: "Laundry Service", locale.JA: "ランドリーサービス"},
	"IS_parking_included":    {locale.VI: "Chỗ đậu xe", locale.EN: "Parking Included", locale.JA: "駐車場込み"},
	"IS_reception_service":   {locale.VI: "Lễ tân", locale.EN: "Reception Service", locale.JA: "レセプションサービス"},
	"IS_mail_service":        {locale.VI: "Dịch vụ thư tín", locale.EN: "Mail Service", locale.JA: "郵便サービス"},
	"IS_backup_power":        {locale.VI: "Máy phát điện dự phòng", locale.EN: "Backup Power", locale.JA: "非常用電源"},

	"IF_kitchen":          {locale.VI: "Bếp", locale.EN: "Kitchen", locale.JA: "キッチン"},
	"IF_refrigerator":     {locale.VI: "Tủ lạnh", locale.EN: "Refrigerator", locale.JA: "冷蔵庫"},
	"IF_microwave":        {locale.VI: "Lò vi sóng", locale.EN: "Microwave", locale.JA: "電子レンジ"},
	"IF_dining_table":     {locale.VI: "Bàn ăn", locale.EN: "Dining Table", locale.JA: "ダイニングテーブル"},
	"IF_cooking_utensils": {locale.VI: "Dụng cụ nấu ăn", locale.EN: "Cooking Utensils", locale.JA: "調理器具"},
	"IF_sofa":             {locale.VI: "Ghế sofa", locale.EN: "Sofa", locale.JA: "ソファ"},
	"IF_television":       {locale.VI: "Ti vi", locale.EN: "Television", locale.JA: "テレビ"},
	"IF_coffee_table":     {locale.VI: "Bàn cà phê", locale.EN: "Coffee Table", locale.JA: "コーヒーテーブル"},
	"IF_bookshelf":        {locale.VI: "Giá sách", locale.EN: "Bookshelf", locale.JA: "本棚"},
	"IF_bed":              {locale.VI: "Giường", locale.EN: "Bed", locale.JA: "ベッド"},
	"IF_wardrobe":         {locale.VI: "Tủ quần áo", locale.EN: "Wardrobe", locale.JA: "ワードローブ"},
	"IF_desk":             {locale.VI: "Bàn làm việc", locale.EN: "Desk", locale.JA: "デスク"},
	"IF_chair":            {locale.VI: "Ghế", locale.EN: "Chair", locale.JA: "椅子"},
	"IF_private_bathroom": {locale.VI: "Phòng tắm riêng", locale.EN: "Private Bathroom", locale.JA: "専用バスルーム"},
	"IF_shower":           {locale.VI: "Vòi sen", locale.EN: "Shower", locale.JA: "シャワー"},
	"IF_bathtub":          {locale.VI: "Bồn tắm", locale.EN: "Bathtub", locale.JA: "浴槽"},
	"IF_air_conditioning": {locale.VI: "Điều hòa", locale.EN: "Air Conditioning", locale.JA: "エアコン"},
	"IF_balcony":          {locale.VI: "Ban công", locale.EN: "Balcony", locale.JA: "バルコニー"},
	"IF_washing_machine":  {locale.VI: "Máy giặt", locale.EN: "Washing Machine", locale.JA: "洗濯機"},
	"IF_closet":           {locale.VI: "Tủ đựng đồ", locale.EN: "Closet", locale.JA: "クローゼット"},
	"IF_mirror":           {locale.VI: "Gương", locale.EN: "Mirror", locale.JA: "鏡"},
}

// Seed inserts the catalogue when the amenities table is empty. Returns the number
// of amenities created.
func Seed(ctx context.Context, db *gorm.DB) (int, error) {
	log := logger.FromContext(ctx)

	var count int64
	if err := db.WithContext(ctx).Model(&properties.Amenity{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		log.Info("Amenities already exist, skipping initialization", zap.Int64("count", count))
		return 0, nil
	}

	keys := make([]string, 0, len(catalogue))
	for k := range catalogue {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, key := range keys {
			a := properties.Amenity{Key: key}
			for _, l := range locale.All() {
				a.Translations = append(a.Translations, properties.AmenityI18n{Locale: l, Label: catalogue[key][l]})
			}
			if err := tx.Create(&a).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Info("Amenity data initialized", zap.Int("count", len(keys)))
	return len(keys), nil
}
