package dto

// RegisterDTO 注册（上游网关已完成身份认证，这里只登记展示信息）
type RegisterDTO struct {
	Username  *string `json:"username" validate:"omitempty,max=100"`
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
}

// CityDTO 设置城市
type CityDTO struct {
	City string `json:"city" binding:"required" validate:"min=1,max=100"`
}

// CategoriesDTO 全量替换订阅分类
type CategoriesDTO struct {
	CategoryIDs []uint64 `json:"category_ids" binding:"required" validate:"min=1,max=20"`
}

// UserDTO 用户
type UserDTO struct {
	ID         uint64        `json:"id"`
	Username   *string       `json:"username,omitempty"`
	FirstName  *string       `json:"first_name,omitempty"`
	City       *string       `json:"city,omitempty"`
	Categories []CategoryDTO `json:"categories"`
}
