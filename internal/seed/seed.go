package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type productSeed struct {
	ID          string
	Name        string
	Category    string
	Price       int64
	Stock       int
	Description string
	ImageURL    string
	Registered  string
}

// The launch catalog of the shop. Image URLs match the ones the storefront
// shipped with.
var products = []productSeed{
	{
		ID:          "P001",
		Name:        "프리미엄 축하화환 A",
		Category:    "축하화환",
		Price:       150000,
		Stock:       10,
		Description: "고급 장미와 카네이션으로 만든 프리미엄 축하화환",
		ImageURL:    "https://cdn.midjourney.com/781b0120-8c5e-4fc7-8d2e-e00f8439266f/0_3.png",
		Registered:  "2024-03-15",
	},
	{
		ID:          "P002",
		Name:        "로즈 꽃다발 50송이",
		Category:    "꽃다발",
		Price:       80000,
		Stock:       20,
		Description: "신선한 빨간 장미 50송이 꽃다발",
		ImageURL:    "https://cdn.midjourney.com/f3006714-a5da-4371-867a-ec9267d48057/0_3.png",
		Registered:  "2024-03-14",
	},
	{
		ID:          "P003",
		Name:        "몬스테라 대형",
		Category:    "관엽식물",
		Price:       65000,
		Stock:       15,
		Description: "공기정화 기능이 있는 몬스테라 대형",
		ImageURL:    "https://cdn.midjourney.com/c25bc457-6572-4871-ae2f-3aa37d0dc04d/0_0.png",
		Registered:  "2024-03-13",
	},
	{
		ID:          "P004",
		Name:        "근조화환 기본형",
		Category:    "근조화환",
		Price:       100000,
		Stock:       8,
		Description: "깔끔하고 정중한 근조화환 기본형",
		ImageURL:    "https://cdn.midjourney.com/6b748ffe-880d-43ea-a988-db1bc1d8fe5d/0_2.png",
		Registered:  "2024-03-12",
	},
	{
		ID:          "P005",
		Name:        "개업축하 난 세트",
		Category:    "개업축하",
		Price:       200000,
		Stock:       5,
		Description: "고급 난으로 구성된 개업축하 세트",
		ImageURL:    "https://cdn.midjourney.com/f3006714-a5da-4371-867a-ec9267d48057/0_3.png",
		Registered:  "2024-03-11",
	},
	{
		ID:          "P006",
		Name:        "승진 축하 꽃바구니",
		Category:    "승진/취임",
		Price:       120000,
		Stock:       12,
		Description: "승진과 취임을 축하하는 고급 꽃바구니",
		ImageURL:    "https://cdn.midjourney.com/01b8d609-5e58-4ad0-acbb-c6a19b8d0e47/0_0.png",
		Registered:  "2024-03-10",
	},
	{
		ID:          "P007",
		Name:        "결혼 축하 부케",
		Category:    "결혼/장례",
		Price:       180000,
		Stock:       8,
		Description: "웨딩을 더욱 아름답게 만드는 프리미엄 부케",
		ImageURL:    "https://cdn.midjourney.com/3dbe2cf6-b50e-4e69-94e3-83f2a4dc8f25/0_2.png",
		Registered:  "2024-03-09",
	},
	{
		ID:          "P008",
		Name:        "플랜테리어 세트",
		Category:    "플랜테리어",
		Price:       95000,
		Stock:       18,
		Description: "공간을 꾸미는 플랜테리어 식물 세트",
		ImageURL:    "https://cdn.midjourney.com/c25bc457-6572-4871-ae2f-3aa37d0dc04d/0_0.png",
		Registered:  "2024-03-08",
	},
}

// Apply inserts the launch catalog plus a super admin account for manual
// testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.ID, err)
		}
	}
	if err := ensureAdmin(ctx, pool, "admin@flowershop.kr", "관리자", "admin1234"); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	registered, err := time.Parse("2006-01-02", p.Registered)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO products (id, name, category, price, stock, description, status, image_url, registered_at)
VALUES ($1, $2, $3, $4, $5, $6, '판매중', $7, $8)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    category = EXCLUDED.category,
    price = EXCLUDED.price,
    stock = EXCLUDED.stock,
    description = EXCLUDED.description,
    image_url = EXCLUDED.image_url
`
	_, err = pool.Exec(ctx, q, p.ID, p.Name, p.Category, p.Price, p.Stock, p.Description, p.ImageURL, registered)
	return err
}

func ensureAdmin(ctx context.Context, pool *pgxpool.Pool, email, name, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO users (email, name, role, hashed_password)
VALUES ($1, $2, 'super_admin', $3)
ON CONFLICT (email) DO NOTHING
`
	_, err = pool.Exec(ctx, q, email, name, string(hash))
	return err
}
