package cart

// Kind 商品标识的键类型
// 上游接口对同一商品的键命名不一致：有时叫bookId，有时叫productId，
// 远程购物车行还会带自己的_id
type Kind string

const (
	KindAny     Kind = ""        // 按任意键字段匹配（仅用于查找）
	KindBook    Kind = "book"    // bookId
	KindProduct Kind = "product" // productId
	KindRecord  Kind = "record"  // 远程购物车行_id
)

// Identity 条目标识（带类型的联合键）
type Identity struct {
	Kind Kind   `json:"kind"`
	ID   string `json:"id"`
}

// BookRef 按bookId构造标识
func BookRef(id string) Identity { return Identity{Kind: KindBook, ID: id} }

// ProductRef 按productId构造标识
func ProductRef(id string) Identity { return Identity{Kind: KindProduct, ID: id} }

// RecordRef 按远程购物车行_id构造标识
func RecordRef(id string) Identity { return Identity{Kind: KindRecord, ID: id} }

// AnyRef 构造不限键类型的查找标识（路由参数里的原始ID）
func AnyRef(id string) Identity { return Identity{Kind: KindAny, ID: id} }

// IsZero 是否为空标识
func (i Identity) IsZero() bool { return i.ID == "" }

// Equal 判断两个标识是否指向同一条目
// 规则：
// 1. 空ID永不相等
// 2. KindAny与任何键类型兼容
// 3. book与product视为同一商品目录键（上游命名不一致）
// 4. record只与record兼容
func Equal(a, b Identity) bool {
	if a.ID == "" || b.ID == "" || a.ID != b.ID {
		return false
	}
	return compatible(a.Kind, b.Kind)
}

func compatible(a, b Kind) bool {
	if a == KindAny || b == KindAny || a == b {
		return true
	}
	catalog := func(k Kind) bool { return k == KindBook || k == KindProduct }
	return catalog(a) && catalog(b)
}
