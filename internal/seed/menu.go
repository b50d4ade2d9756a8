// Package seed loads demonstration content. It only runs when invoked by
// cmd/seed; nothing in the server seeds implicitly.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/storefront-api/internal/model"
	"github.com/iliyamo/storefront-api/internal/repository"
)

func flag(v bool) *bool { return &v }

// DemoMenu is the sample menu shipped with the project.
func DemoMenu() []model.MenuItemInput {
	return []model.MenuItemInput{
		{Name: "Adana Kebap", Description: "Zırh kıyması, közlenmiş biber ve domates ile", Price: "320 ₺", Category: "Ana Yemek", Image: "https://res.cloudinary.com/demo/image/upload/storefront/menu/adana.jpg", IsSpicy: flag(true), IsPopular: flag(true)},
		{Name: "İskender", Description: "Tereyağlı pide üzerinde döner, yoğurt ve domates sosu", Price: "350 ₺", Category: "Ana Yemek", Image: "https://res.cloudinary.com/demo/image/upload/storefront/menu/iskender.jpg", IsPopular: flag(true)},
		{Name: "Mercimek Çorbası", Description: "Limon ve kırmızı biberli yağ ile", Price: "90 ₺", Category: "Çorba", Image: "https://res.cloudinary.com/demo/image/upload/storefront/menu/mercimek.jpg", IsVegetarian: flag(true)},
		{Name: "Lahmacun", Description: "İnce hamur, kıyma ve maydanoz", Price: "110 ₺", Category: "Pide & Lahmacun", Image: "https://res.cloudinary.com/demo/image/upload/storefront/menu/lahmacun.jpg", IsSpicy: flag(true)},
		{Name: "Kaşarlı Pide", Description: "Taş fırında kaşar peyniri ile", Price: "180 ₺", Category: "Pide & Lahmacun", Image: "https://res.cloudinary.com/demo/image/upload/storefront/menu/kasarli-pide.jpg", IsVegetarian: flag(true)},
		{Name: "Çoban Salata", Description: "Domates, salatalık, biber, soğan ve nar ekşisi", Price: "95 ₺", Category: "Salata", Image: "https://res.cloudinary.com/demo/image/upload/storefront/menu/coban.jpg", IsVegetarian: flag(true)},
		{Name: "Künefe", Description: "Hatay peyniri ve antep fıstığı ile", Price: "160 ₺", Category: "Tatlı", Image: "https://res.cloudinary.com/demo/image/upload/storefront/menu/kunefe.jpg", IsVegetarian: flag(true), IsPopular: flag(true)},
		{Name: "Baklava", Description: "Fıstıklı, porsiyon 4 dilim", Price: "140 ₺", Category: "Tatlı", Image: "https://res.cloudinary.com/demo/image/upload/storefront/menu/baklava.jpg", IsVegetarian: flag(true)},
		{Name: "Ayran", Description: "Köpüklü, yayık ayranı", Price: "40 ₺", Category: "İçecek", Image: "https://res.cloudinary.com/demo/image/upload/storefront/menu/ayran.jpg", IsVegetarian: flag(true)},
		{Name: "Türk Kahvesi", Description: "Lokum ile servis edilir", Price: "60 ₺", Category: "İçecek", Image: "https://res.cloudinary.com/demo/image/upload/storefront/menu/kahve.jpg", IsVegetarian: flag(true)},
	}
}

// Menu replaces the menu collection with DemoMenu. With ifEmpty it leaves a
// non-empty collection untouched and reports zero items written.
func Menu(ctx context.Context, repo repository.Repository[model.MenuItem], ifEmpty bool) (int, error) {
	if ifEmpty {
		n, err := repo.Count(ctx)
		if err != nil {
			return 0, err
		}
		if n > 0 {
			return 0, nil
		}
	} else if err := repo.Clear(ctx); err != nil {
		return 0, fmt.Errorf("clear menu: %w", err)
	}

	now := time.Now().UTC()
	items := DemoMenu()
	for i, in := range items {
		if _, err := repo.Create(ctx, in.Build(now)); err != nil {
			return i, fmt.Errorf("seed %q: %w", in.Name, err)
		}
	}
	return len(items), nil
}
