package dto

// ToggleFilterRequest 勾选/取消筛选项
// value格式为"<facet>-<value>"，例如category-Fiction、range-10,50、inStock-true
type ToggleFilterRequest struct {
	Value   string `json:"value" binding:"required" example:"category-Fiction"`
	Checked bool   `json:"checked" example:"true"`
}

// SearchFilterRequest 设置搜索词（空白删除搜索参数）
type SearchFilterRequest struct {
	Term string `json:"searchTerm" example:"sea"`
}

// SortFilterRequest 设置排序
// option取值：l-t-h（价格升序）、h-t-l（价格降序）
type SortFilterRequest struct {
	Option string `json:"option" binding:"required" example:"l-t-h"`
}
