package domain

import (
	"time"
)

// CREATE TABLE public.products (
//     id                  BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     seller_id           BIGINT,
//     product_name        TEXT,
//     category_slug       TEXT,
//     subcategory_slug    TEXT,
//     price               NUMERIC,
//     cost_price          NUMERIC,
//     discount_percentage NUMERIC,
//     stock_quantity      INT,
//     average_rating      NUMERIC,
//     review_count        INT,
//     is_featured         BOOLEAN,
//     created_at          TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID                 uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SellerID           uint      `gorm:"column:seller_id" json:"seller_id"`
	ProductName        string    `gorm:"column:product_name;type:text" json:"product_name"`
	CategorySlug       string    `gorm:"column:category_slug;type:text" json:"category_slug"`
	SubcategorySlug    string    `gorm:"column:subcategory_slug;type:text" json:"subcategory_slug"`
	Price              float64   `gorm:"column:price;type:numeric" json:"price"`
	CostPrice          float64   `gorm:"column:cost_price;type:numeric" json:"cost_price"`
	DiscountPercentage float64   `gorm:"column:discount_percentage;type:numeric" json:"discount_percentage"`
	StockQuantity      int       `gorm:"column:stock_quantity" json:"stock_quantity"`
	AverageRating      float64   `gorm:"column:average_rating;type:numeric" json:"average_rating"`
	ReviewCount        int       `gorm:"column:review_count" json:"review_count"`
	IsFeatured         bool      `gorm:"column:is_featured;default:false" json:"is_featured"`
	CreatedAt          time.Time `gorm:"column:created_at" json:"created_at"`

	Analytics *ProductAnalytics `gorm:"foreignKey:ProductID" json:"analytics,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// ProductAnalytics holds the behavioral counters for one product. A product
// without a row here is still scorable; every extractor treats the missing
// snapshot as zeros.
type ProductAnalytics struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID     uint64    `gorm:"column:product_id;index" json:"product_id"`
	Views         int       `gorm:"column:views" json:"views"`
	CartAdditions int       `gorm:"column:cart_additions" json:"cart_additions"`
	Purchases     int       `gorm:"column:purchases" json:"purchases"`
	SalesCount    int       `gorm:"column:sales_count" json:"sales_count"`
	TotalSold     int       `gorm:"column:total_sold" json:"total_sold"`
	Revenue       float64   `gorm:"column:revenue;type:numeric" json:"revenue"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

func (ProductAnalytics) TableName() string {
	return "product_analytics"
}

// Campaign is consumed read-only: its product ids receive the featured-level
// boost during scoring. Campaign CRUD lives outside this service.
type Campaign struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title         string    `gorm:"column:title;type:text" json:"title"`
	PriorityScore float64   `gorm:"column:priority_score;type:numeric" json:"priority_score"`
	StartsAt      time.Time `gorm:"column:starts_at" json:"starts_at"`
	EndsAt        time.Time `gorm:"column:ends_at" json:"ends_at"`
	ProductIDs    []uint64  `gorm:"-" json:"product_ids"`
}

func (Campaign) TableName() string {
	return "campaigns"
}

// CampaignProduct joins campaigns to the products they promote.
type CampaignProduct struct {
	CampaignID uint64 `gorm:"column:campaign_id;primaryKey" json:"campaign_id"`
	ProductID  uint64 `gorm:"column:product_id;primaryKey" json:"product_id"`
}

func (CampaignProduct) TableName() string {
	return "campaign_products"
}
