package cache

import (
	"fmt"
	"time"
)

// Cache TTLs per resource. Cart is short because it changes on almost every
// request the user makes.
const (
	TTLOrderList   = 5 * time.Minute
	TTLOrderDetail = 10 * time.Minute
	TTLCart        = 2 * time.Minute
	TTLProduct     = 5 * time.Minute
	TTLCategory    = 10 * time.Minute
)

func OrderListKey(userID string, page, limit int) string {
	return fmt.Sprintf("orders:user:%s:list:page:%d:limit:%d", userID, page, limit)
}

func OrderListPattern(userID string) string {
	return fmt.Sprintf("orders:user:%s:list:*", userID)
}

func OrderDetailKey(orderID string) string {
	return fmt.Sprintf("orders:detail:%s", orderID)
}

func CartListKey(userID string, page, limit int) string {
	return fmt.Sprintf("cart:user:%s:items:page:%d:limit:%d", userID, page, limit)
}

func CartPattern(userID string) string {
	return fmt.Sprintf("cart:user:%s:*", userID)
}

func ProductListKey(tenantID string, page, limit int) string {
	return fmt.Sprintf("products:tenant:%s:list:page:%d:limit:%d", tenantID, page, limit)
}

func ProductDetailKey(productID string) string {
	return fmt.Sprintf("products:detail:%s", productID)
}

func ProductByCategoryKey(tenantID, categoryID string) string {
	return fmt.Sprintf("products:tenant:%s:category:%s", tenantID, categoryID)
}

func ProductListPattern(tenantID string) string {
	return fmt.Sprintf("products:tenant:%s:list:*", tenantID)
}

func ProductCategoryPattern(tenantID, categoryID string) string {
	return fmt.Sprintf("products:tenant:%s:category:%s", tenantID, categoryID)
}

func CategoryListKey(tenantID string) string {
	return fmt.Sprintf("categories:tenant:%s:list", tenantID)
}

func CategoryPattern(tenantID string) string {
	return fmt.Sprintf("categories:tenant:%s:*", tenantID)
}
