package categories

import (
	"opensourcetogether/internal/util/logger"
)

var categoryRepository = &CategoryRepository{}
var categoryService = &CategoryService{
	categoryRepository: categoryRepository,
	logger:             logger.GetLogger(),
}
var categoryController = &CategoryController{
	categoryService: categoryService,
}

func GetCategoryService() *CategoryService {
	return categoryService
}

func GetCategoryController() *CategoryController {
	return categoryController
}
